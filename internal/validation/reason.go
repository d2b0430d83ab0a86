package validation

import "github.com/pkg/errors"

// Reason identifies why a payload was rejected.
type Reason string

const (
	ReasonTitleRequired         Reason = "title_required"
	ReasonTitleNotText          Reason = "title_not_text"
	ReasonTitleEmpty            Reason = "title_empty"
	ReasonTitleTooLong          Reason = "title_too_long"
	ReasonDescriptionNotText    Reason = "description_not_text"
	ReasonDescriptionTooLong    Reason = "description_too_long"
	ReasonDetailsNotText        Reason = "details_not_text"
	ReasonDetailsTooLong        Reason = "details_too_long"
	ReasonPriceInvalid          Reason = "price_invalid"
	ReasonPriceNegative         Reason = "price_negative"
	ReasonOriginalPriceInvalid  Reason = "original_price_invalid"
	ReasonOriginalPriceNegative Reason = "original_price_negative"
	ReasonImageInvalid          Reason = "image_invalid"
	ReasonCategoryRequired      Reason = "category_required"
	ReasonSizesNotList          Reason = "sizes_not_list"
	ReasonBadgeNotText          Reason = "badge_not_text"
	ReasonIDInvalid             Reason = "id_invalid"
	ReasonIDTaken               Reason = "id_taken"
	ReasonTitleDuplicate        Reason = "title_duplicate"
	ReasonImageDuplicate        Reason = "image_duplicate"
	ReasonCartEmpty             Reason = "cart_empty"
	ReasonItemsNotList          Reason = "items_not_list"
	ReasonDateInvalid           Reason = "date_invalid"
)

var messages = map[Reason]string{
	ReasonTitleRequired:         "Product title is required",
	ReasonTitleNotText:          "Product title must be text",
	ReasonTitleEmpty:            "Product title cannot be empty",
	ReasonTitleTooLong:          "Product title cannot exceed 100 characters",
	ReasonDescriptionNotText:    "Description must be text",
	ReasonDescriptionTooLong:    "Description cannot exceed 500 characters",
	ReasonDetailsNotText:        "Details must be text",
	ReasonDetailsTooLong:        "Details cannot exceed 300 characters",
	ReasonPriceInvalid:          "Price must be a number",
	ReasonPriceNegative:         "Price must be a positive number",
	ReasonOriginalPriceInvalid:  "Original price must be a number",
	ReasonOriginalPriceNegative: "Original price must be positive",
	ReasonImageInvalid:          "Image URL is not valid",
	ReasonCategoryRequired:      "Category is required",
	ReasonSizesNotList:          "sizes must be an array",
	ReasonBadgeNotText:          "Badge must be text",
	ReasonIDInvalid:             "ID must be text or a number",
	ReasonIDTaken:               "ID already exists",
	ReasonTitleDuplicate:        "A product with this title already exists",
	ReasonImageDuplicate:        "A product with this image already exists",
	ReasonCartEmpty:             "The cart is empty",
	ReasonItemsNotList:          "items must be an array",
	ReasonDateInvalid:           "date must be an RFC 3339 timestamp",
}

// Message returns the human readable text for r.
func (r Reason) Message() string {
	if m, ok := messages[r]; ok {
		return m
	}
	return string(r)
}

// Error is a rejected payload.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string { return e.Reason.Message() }

func reject(r Reason) error { return &Error{Reason: r} }

// ReasonOf extracts the rejection reason from err, if err is a validation rejection.
func ReasonOf(err error) (Reason, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Reason, true
	}
	return "", false
}
