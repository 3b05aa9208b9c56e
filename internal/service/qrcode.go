package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// TrackingQRGenerator encodes the public order-tracking link so a printed
// receipt can point customers at their order status page.
type TrackingQRGenerator struct {
	BaseURL string
}

func (g TrackingQRGenerator) Generate(orderID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/track?order_id=%s", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

var _ QRGenerator = TrackingQRGenerator{}
