package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

type QRGenerator interface {
	MenuURL(restaurantID, tableID uint) string
	Generate(restaurantID, tableID uint) ([]byte, error)
}

// TableQRGenerator encodes the customer menu link of a table.
type TableQRGenerator struct {
	BaseURL string
}

func (g TableQRGenerator) MenuURL(restaurantID, tableID uint) string {
	return fmt.Sprintf("%s/menu?rid=%d&tid=%d", g.BaseURL, restaurantID, tableID)
}

func (g TableQRGenerator) Generate(restaurantID, tableID uint) ([]byte, error) {
	return qrcode.Encode(g.MenuURL(restaurantID, tableID), qrcode.Medium, qrSize)
}
