package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"tradecore/internal/apierror"
	"tradecore/internal/domain"
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
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

// parseIDParam parses the :id path segment. Writes the 400 response itself.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// requestMeta captures the caller's network identity for the audit trail.
func requestMeta(c *gin.Context) domain.RequestMeta {
	return domain.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// writeDomainError maps the business error taxonomy onto HTTP statuses.
// Not-found is 404; business conflicts (stock, transitions, duplicate keys,
// open orders) are 409; policy rejections are 422; store failures are 500.
func writeDomainError(c *gin.Context, err error) {
	var insufficient *domain.InsufficientStockError
	var transition *domain.InvalidTransitionError
	var persistence *domain.PersistenceError

	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))

	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apierror.New(insufficient.Error()))

	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, apierror.New(transition.Error()))

	case errors.Is(err, domain.ErrDuplicateKey),
		errors.Is(err, domain.ErrOpenOrdersExist):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))

	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrConsentRequired):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))

	case errors.Is(err, domain.ErrAccountLocked):
		c.JSON(http.StatusLocked, apierror.New(err.Error()))

	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidStatusFilter):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))

	case errors.Is(err, domain.ErrInvalidRole):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))

	case errors.As(err, &persistence):
		log.Error().Err(persistence.Err).Str("op", persistence.Op).Msg("store failure")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))

	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
