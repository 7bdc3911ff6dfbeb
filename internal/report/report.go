package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dokan-be/internal/logger"
	"dokan-be/internal/order"

	"go.uber.org/zap"
)

var ErrNoOrders = errors.New("no orders to export")

// Dhaka is the storefront's business timezone. Daily reports are cut on
// local midnights, not UTC ones.
var Dhaka = time.FixedZone("UTC+6", 6*3600)

// DayRange resolves a YYYY-MM-DD date to the half-open interval
// [local midnight, next local midnight) in Dhaka time.
func DayRange(date string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", date, Dhaka)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return from, from.AddDate(0, 0, 1), nil
}

type Service interface {
	// List returns orders for the given local day, or all orders when the
	// date is empty or unparseable.
	List(ctx context.Context, date string) ([]order.Order, error)
	// ExportCSV renders the same selection as a CSV download.
	ExportCSV(ctx context.Context, date string) (string, []byte, error)
}

type service struct {
	orders order.Repository
}

func NewService(orders order.Repository) Service {
	return &service{orders: orders}
}

func (s *service) List(ctx context.Context, date string) ([]order.Order, error) {
	var from, to *time.Time

	if date != "" {
		f, t, err := DayRange(date)
		if err != nil {
			// A malformed filter falls back to the unfiltered list rather
			// than failing the whole report.
			logger.FromCtx(ctx).Warn("ignoring invalid report date", zap.String("date", date))
		} else {
			from, to = &f, &t
		}
	}

	return s.orders.FindByRange(ctx, from, to)
}

var csvHeader = []string{
	"Order_ID", "Date", "Customer_Name", "Email", "Phone", "Address",
	"Total_Amount", "Status", "Payment_Method", "Bkash_Number", "Bkash_TxID",
	"Items", "User_ID", "IP_Address",
}

func (s *service) ExportCSV(ctx context.Context, date string) (string, []byte, error) {
	orders, err := s.List(ctx, date)
	if err != nil {
		return "", nil, err
	}
	if len(orders) == 0 {
		return "", nil, ErrNoOrders
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", nil, err
	}

	for _, o := range orders {
		record := []string{
			o.ID,
			o.CreatedAt.In(Dhaka).Format("2006-01-02 15:04:05"),
			o.Customer.Name,
			o.Customer.Email,
			o.Customer.Phone,
			o.Customer.Address,
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			string(o.Status),
			string(o.Payment.Method),
			o.Payment.BkashNumber,
			o.Payment.BkashTxID,
			flattenItems(o.Items),
			strconv.FormatUint(uint64(o.UserID), 10),
			o.ClientIP,
		}
		if err := w.Write(record); err != nil {
			return "", nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}

	label := date
	if label == "" {
		label = "all-dates"
	}
	filename := fmt.Sprintf("orders-%s.csv", label)

	logger.FromCtx(ctx).Info("report exported",
		zap.String("file", filename),
		zap.Int("orders", len(orders)),
	)

	return filename, buf.Bytes(), nil
}

func flattenItems(items []order.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (ID: %s, Qty: %d, Price: %s)",
			item.Name, item.ProductID, item.Quantity,
			strconv.FormatFloat(item.Price, 'f', 2, 64)))
	}
	return strings.Join(parts, "; ")
}
