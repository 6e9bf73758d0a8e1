package services

import (
	"strings"

	"barberledger-backend/models"
)

// FallbackShopName stands in for an operator that has not set a shop name.
const FallbackShopName = "nossa barbearia"

// RenderMessage fills the first occurrence of each placeholder. Further
// occurrences and unknown tokens are left as written.
func RenderMessage(template, clientName, shopName string) string {
	if strings.TrimSpace(shopName) == "" {
		shopName = FallbackShopName
	}
	msg := strings.Replace(template, models.ClientNamePlaceholder, clientName, 1)
	return strings.Replace(msg, models.ShopNamePlaceholder, shopName, 1)
}
