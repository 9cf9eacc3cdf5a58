package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type DefaultQRGenerator struct {
	BaseURL string
}

// Generate encodes the public page of a restaurant as a 256px PNG.
func (g DefaultQRGenerator) Generate(code string) ([]byte, error) {
	link := fmt.Sprintf("%s/restaurants/%s", strings.TrimRight(g.BaseURL, "/"), url.PathEscape(code))
	return qrcode.Encode(link, qrcode.Medium, 256)
}
