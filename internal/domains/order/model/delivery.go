package model

import (
	"strings"
	"time"
)

// ShippingMethod selects the delivery speed.
type ShippingMethod string

const (
	ShippingStandard  ShippingMethod = "standard"
	ShippingExpress   ShippingMethod = "express"
	ShippingOvernight ShippingMethod = "overnight"
)

func (m ShippingMethod) IsValid() bool {
	switch m {
	case ShippingStandard, ShippingExpress, ShippingOvernight:
		return true
	}
	return false
}

// shippingDays is the base duration per method, in business days.
var shippingDays = map[ShippingMethod]int{
	ShippingStandard:  7,
	ShippingExpress:   3,
	ShippingOvernight: 1,
}

// remoteRegionSurchargeDays is added for hard-to-reach states.
const remoteRegionSurchargeDays = 2

// remoteRegions lists states where carriers need extra transit time.
// Keys are lowercase for case-insensitive lookup.
var remoteRegions = map[string]bool{
	"arunachal pradesh":           true,
	"assam":                       true,
	"manipur":                     true,
	"meghalaya":                   true,
	"mizoram":                     true,
	"nagaland":                    true,
	"sikkim":                      true,
	"tripura":                     true,
	"andaman and nicobar islands": true,
	"lakshadweep":                 true,
	"ladakh":                      true,
}

// IsRemoteRegion reports whether the state gets the transit surcharge.
func IsRemoteRegion(state string) bool {
	return remoteRegions[strings.ToLower(strings.TrimSpace(state))]
}

// EstimateDeliveryDate walks the calendar forward from shippedAt by the
// method's business-day count, plus the remote surcharge when the
// destination state qualifies. Saturdays and Sundays don't count; there
// is no holiday calendar.
func EstimateDeliveryDate(shippedAt time.Time, method ShippingMethod, state string) time.Time {
	days, ok := shippingDays[method]
	if !ok {
		days = shippingDays[ShippingStandard]
	}
	if IsRemoteRegion(state) {
		days += remoteRegionSurchargeDays
	}

	date := shippedAt
	for days > 0 {
		date = date.AddDate(0, 0, 1)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		days--
	}
	return date
}
