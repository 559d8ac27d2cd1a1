package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/internal/model"
	"github.com/matteoalessi-space/booking-system/internal/repository"
)

func setupTestExportService() (ExportService, *mockActivityRepo, *mockBookingRepo) {
	activityRepo := newMockActivityRepo()
	bookingRepo := newMockBookingRepo()
	repo := &repository.Repository{
		Activity:  activityRepo,
		Schedule:  newMockScheduleRepo(),
		Booking:   bookingRepo,
		FormField: newMockFormFieldRepo(),
	}
	return NewExportService(repo, zap.NewNop()), activityRepo, bookingRepo
}

func TestExportService_ExportBookings_NoBookings(t *testing.T) {
	svc, _, _ := setupTestExportService()

	date := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.ExportBookings(context.Background(), date)
	if !errors.Is(err, ErrExportNoBookings) {
		t.Errorf("期望 ErrExportNoBookings，实际: %v", err)
	}
}

func TestExportService_ExportBookings_Success(t *testing.T) {
	svc, activityRepo, bookingRepo := setupTestExportService()

	activityRepo.activities["act-001"] = &model.Activity{
		ActivityID: "act-001", Name: "Kayak", IsActive: true,
	}
	date := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC)
	bookingRepo.bookings["bk-001"] = &model.Booking{
		BookingID: "bk-001", ActivityID: "act-001", BookingDate: date,
		StartTime: "10:00:00", EndTime: "11:00:00",
		CustomerName: "Mario Rossi", CustomerEmail: "mario@example.com",
		NumberOfPeople: 4, Status: model.StatusConfirmed, Source: model.SourceShopify,
	}

	buf, filename, err := svc.ExportBookings(context.Background(), date)
	if err != nil {
		t.Fatalf("ExportBookings 应成功: %v", err)
	}
	if filename != "prenotazioni_2024-12-23.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}

	// 回读校验内容
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("打开生成的 Excel 失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Prenotazioni")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望表头+1 行数据，实际=%d 行", len(rows))
	}
	if rows[1][0] != "Kayak" || rows[1][2] != "Mario Rossi" {
		t.Errorf("数据行内容错误: %v", rows[1])
	}
	if rows[1][1] != "10:00 - 11:00" {
		t.Errorf("时段格式错误: %s", rows[1][1])
	}
}
