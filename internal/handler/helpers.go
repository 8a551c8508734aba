package handler

import (
	"errors"
	"net/http"
	"reflect"

	"lpgpos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the error taxonomy onto HTTP statuses:
// validation 422, stock conflicts 409, locked dates 423, configuration
// defects 500, unknown rows 404, everything else 500 with a generic body.
func respondError(c *gin.Context, err error) {
	var validationErr *apierror.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, validationErr)
		return
	}

	var stockErr *apierror.StockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, apierror.New(stockErr.Error()))
		return
	}

	var lockedErr *apierror.LockedPeriodError
	if errors.As(err, &lockedErr) {
		c.JSON(http.StatusLocked, apierror.New(lockedErr.Error()))
		return
	}

	var configErr *apierror.ConfigurationError
	if errors.As(err, &configErr) {
		c.JSON(http.StatusInternalServerError, apierror.New(configErr.Error()))
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("not found"))
		return
	}

	c.JSON(http.StatusInternalServerError, apierror.New("internal error"))
}
