package validation

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"stagestyle/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Stored product fields probed for uniqueness.
const (
	fieldID    = "id"
	fieldTitle = "title"
	fieldImage = "image"
)

var imagePattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|webp|avif|gif|svg)$`)

// Catalog answers uniqueness questions about stored products.
type Catalog interface {
	// ExistsByField reports whether a product other than excludeID has field equal to value.
	ExistsByField(ctx context.Context, field, value, excludeID string) (bool, error)
}

// ProductValidator decides whether product payloads may be written.
type ProductValidator struct {
	catalog  Catalog
	validate *validator.Validate
	now      func() time.Time
}

// NewProductValidator creates a validator that checks uniqueness against catalog.
func NewProductValidator(catalog Catalog) *ProductValidator {
	return &ProductValidator{
		catalog:  catalog,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for timestamps.
func (v *ProductValidator) SetClock(now func() time.Time) { v.now = now }

// ValidateCreate checks a new product payload and returns the normalized record.
// Rejections are *Error values; lookup failures are returned wrapped.
func (v *ProductValidator) ValidateCreate(ctx context.Context, p Payload) (*models.Product, error) {
	title, _, err := v.checkTitle(p, true)
	if err != nil {
		return nil, err
	}
	description, _, err := v.checkText(p, "description", 500, ReasonDescriptionNotText, ReasonDescriptionTooLong)
	if err != nil {
		return nil, err
	}
	details, _, err := v.checkText(p, "details", 300, ReasonDetailsNotText, ReasonDetailsTooLong)
	if err != nil {
		return nil, err
	}
	price, hasPrice, err := checkNumber(p, "price", ReasonPriceInvalid, ReasonPriceNegative)
	if err != nil {
		return nil, err
	}
	if !hasPrice {
		return nil, reject(ReasonPriceInvalid)
	}
	originalPrice, hasOriginalPrice, err := checkNumber(p, "originalPrice", ReasonOriginalPriceInvalid, ReasonOriginalPriceNegative)
	if err != nil {
		return nil, err
	}
	if !hasOriginalPrice {
		originalPrice = price
	}
	image, _, err := checkImage(p)
	if err != nil {
		return nil, err
	}
	category, hasCategory, err := checkCategory(p)
	if err != nil {
		return nil, err
	}
	if !hasCategory {
		return nil, reject(ReasonCategoryRequired)
	}
	sizes, hasSizes, err := checkSizes(p)
	if err != nil {
		return nil, err
	}
	if !hasSizes {
		sizes = []any{}
	}
	badge, _, err := checkBadge(p)
	if err != nil {
		return nil, err
	}

	var id string
	if raw, ok := p.get("id"); ok {
		var isID bool
		if id, isID = toID(raw); !isID {
			return nil, reject(ReasonIDInvalid)
		}
		if id != "" {
			if err := v.ensureUnique(ctx, fieldID, id, "", ReasonIDTaken); err != nil {
				return nil, err
			}
		}
	}
	if err := v.ensureUnique(ctx, fieldTitle, title, "", ReasonTitleDuplicate); err != nil {
		return nil, err
	}
	if image != "" {
		if err := v.ensureUnique(ctx, fieldImage, image, "", ReasonImageDuplicate); err != nil {
			return nil, err
		}
	}

	return &models.Product{
		ID:            id,
		Title:         title,
		Description:   description,
		Details:       details,
		Image:         image,
		Price:         price,
		OriginalPrice: originalPrice,
		Category:      category,
		Sizes:         sizes,
		Badge:         badge,
		CreatedAt:     v.now(),
	}, nil
}

// ValidateUpdate checks the fields present in p for the product existingID and returns
// only those fields, plus the update time.
func (v *ProductValidator) ValidateUpdate(ctx context.Context, existingID string, p Payload) (*models.ProductPatch, error) {
	patch := &models.ProductPatch{}

	title, hasTitle, err := v.checkTitle(p, false)
	if err != nil {
		return nil, err
	}
	if hasTitle {
		if err := v.ensureUnique(ctx, fieldTitle, title, existingID, ReasonTitleDuplicate); err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	description, hasDescription, err := v.checkText(p, "description", 500, ReasonDescriptionNotText, ReasonDescriptionTooLong)
	if err != nil {
		return nil, err
	}
	if hasDescription {
		patch.Description = &description
	}
	details, hasDetails, err := v.checkText(p, "details", 300, ReasonDetailsNotText, ReasonDetailsTooLong)
	if err != nil {
		return nil, err
	}
	if hasDetails {
		patch.Details = &details
	}
	price, hasPrice, err := checkNumber(p, "price", ReasonPriceInvalid, ReasonPriceNegative)
	if err != nil {
		return nil, err
	}
	if hasPrice {
		patch.Price = &price
	}
	originalPrice, hasOriginalPrice, err := checkNumber(p, "originalPrice", ReasonOriginalPriceInvalid, ReasonOriginalPriceNegative)
	if err != nil {
		return nil, err
	}
	if hasOriginalPrice {
		patch.OriginalPrice = &originalPrice
	}
	image, hasImage, err := checkImage(p)
	if err != nil {
		return nil, err
	}
	if hasImage {
		// An empty image clears the field and never collides.
		if image != "" {
			if err := v.ensureUnique(ctx, fieldImage, image, existingID, ReasonImageDuplicate); err != nil {
				return nil, err
			}
		}
		patch.Image = &image
	}
	category, hasCategory, err := checkCategory(p)
	if err != nil {
		return nil, err
	}
	if hasCategory {
		patch.Category = &category
	}
	sizes, hasSizes, err := checkSizes(p)
	if err != nil {
		return nil, err
	}
	if hasSizes {
		patch.Sizes = &sizes
	}
	badge, hasBadge, err := checkBadge(p)
	if err != nil {
		return nil, err
	}
	if hasBadge {
		patch.Badge = &badge
	}

	patch.UpdatedAt = v.now()
	return patch, nil
}

func (v *ProductValidator) checkTitle(p Payload, required bool) (string, bool, error) {
	raw, ok := p.get("title")
	if !ok {
		if required {
			return "", false, reject(ReasonTitleRequired)
		}
		return "", false, nil
	}
	title, isText := raw.(string)
	if !isText {
		return "", false, reject(ReasonTitleNotText)
	}
	if strings.TrimSpace(title) == "" {
		return "", false, reject(ReasonTitleEmpty)
	}
	if v.validate.Var(title, "max=100") != nil {
		return "", false, reject(ReasonTitleTooLong)
	}
	return strings.TrimSpace(title), true, nil
}

func (v *ProductValidator) checkText(p Payload, key string, max int, notText, tooLong Reason) (string, bool, error) {
	raw, ok := p.get(key)
	if !ok {
		return "", false, nil
	}
	text, isText := raw.(string)
	if !isText {
		return "", false, reject(notText)
	}
	if v.validate.Var(text, "max="+strconv.Itoa(max)) != nil {
		return "", false, reject(tooLong)
	}
	return text, true, nil
}

func (v *ProductValidator) ensureUnique(ctx context.Context, field, value, excludeID string, reason Reason) error {
	taken, err := v.catalog.ExistsByField(ctx, field, value, excludeID)
	if err != nil {
		return errors.Wrapf(err, "failed to check product %s uniqueness", field)
	}
	if taken {
		return reject(reason)
	}
	return nil
}

func checkNumber(p Payload, key string, invalid, negative Reason) (float64, bool, error) {
	raw, ok := p.get(key)
	if !ok {
		return 0, false, nil
	}
	n, isNumber := toNumber(raw)
	if !isNumber {
		return 0, false, reject(invalid)
	}
	if n < 0 {
		return 0, false, reject(negative)
	}
	return n, true, nil
}

// checkImage returns the trimmed image URL. Empty values skip the pattern check.
func checkImage(p Payload) (string, bool, error) {
	raw, ok := p.get("image")
	if !ok {
		return "", false, nil
	}
	image, isText := raw.(string)
	if !isText {
		return "", false, reject(ReasonImageInvalid)
	}
	if strings.TrimSpace(image) != "" && !imagePattern.MatchString(image) {
		return "", false, reject(ReasonImageInvalid)
	}
	return strings.TrimSpace(image), true, nil
}

func checkCategory(p Payload) (string, bool, error) {
	raw, ok := p.get("category")
	if !ok {
		return "", false, nil
	}
	category, isText := raw.(string)
	if !isText || strings.TrimSpace(category) == "" {
		return "", false, reject(ReasonCategoryRequired)
	}
	return category, true, nil
}

func checkSizes(p Payload) ([]any, bool, error) {
	raw, ok := p.get("sizes")
	if !ok {
		return nil, false, nil
	}
	sizes, isList := raw.([]any)
	if !isList {
		return nil, false, reject(ReasonSizesNotList)
	}
	return sizes, true, nil
}

func checkBadge(p Payload) (string, bool, error) {
	raw, ok := p.get("badge")
	if !ok {
		return "", false, nil
	}
	badge, isText := raw.(string)
	if !isText {
		return "", false, reject(ReasonBadgeNotText)
	}
	return badge, true, nil
}
