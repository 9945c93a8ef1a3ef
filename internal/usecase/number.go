package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// 注文番号・台帳番号の採番
type NumberGenerator interface {
	OrderNumber(now time.Time) string
	TransactionNumber(now time.Time) string
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// PREFIX-YYYYMMDDHHMMSS-XXXXXXXX（UUIDv4の先頭8桁を大文字で）
type UUIDNumberGenerator struct{}

func (UUIDNumberGenerator) OrderNumber(now time.Time) string {
	return formatNumber("ORD", now)
}

func (UUIDNumberGenerator) TransactionNumber(now time.Time) string {
	return formatNumber("TXN", now)
}

func formatNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + "-" + now.UTC().Format("20060102150405") + "-" + suffix
}
