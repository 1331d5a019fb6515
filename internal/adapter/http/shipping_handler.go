package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/usecase"
)

type ShippingHandler struct {
	calc      *usecase.CalculateShipping
	countries usecase.CountryRepository
}

func NewShippingHandler(calc *usecase.CalculateShipping, countries usecase.CountryRepository) *ShippingHandler {
	return &ShippingHandler{calc: calc, countries: countries}
}

type quoteProductReq struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	PriceCents  int64  `json:"priceCents" binding:"required,gt=0"`
	WeightGrams int64  `json:"weightGrams" binding:"required,gt=0"`
	Quantity    int64  `json:"quantity"`
}

type quoteReq struct {
	OrderID  string            `json:"orderId"`
	Country  string            `json:"country" binding:"required"`
	Currency string            `json:"currency"`
	Date     string            `json:"date"`
	Products []quoteProductReq `json:"products" binding:"required,min=1,dive"`
}

type quoteStepResp struct {
	Rule        string `json:"rule"`
	CostBefore  string `json:"costBefore"`
	CostAfter   string `json:"costAfter"`
	Description string `json:"description"`
}

type quoteResp struct {
	OrderID       string          `json:"orderId"`
	Country       string          `json:"country"`
	CartValue     string          `json:"cartValue"`
	TotalWeightKg float64         `json:"totalWeightKg"`
	ShippingCost  string          `json:"shippingCost"`
	CostCents     int64           `json:"costCents"`
	FreeShipping  bool            `json:"freeShipping"`
	AppliedRules  []string        `json:"appliedRules"`
	Steps         []quoteStepResp `json:"steps"`
}

// Quote calculates the shipping cost for a prospective order.
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	order, err := h.buildOrder(ctx, req)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, errUnknownCountry) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	out, err := h.calc.Execute(ctx, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quoteRespFrom(out))
}

var errUnknownCountry = errors.New("unknown country")

func (h *ShippingHandler) buildOrder(ctx context.Context, req quoteReq) (*domain.Order, error) {
	country, err := h.countries.FindByCode(ctx, req.Country)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, errUnknownCountry
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.PLN
	}

	date := domain.Today()
	if req.Date != "" {
		date, err = domain.ParseOrderDate(req.Date)
		if err != nil {
			return nil, err
		}
	}

	products := make([]domain.Product, 0, len(req.Products))
	for _, p := range req.Products {
		price, err := domain.NewMoney(p.PriceCents, currency)
		if err != nil {
			return nil, err
		}
		weight, err := domain.WeightFromGrams(p.WeightGrams)
		if err != nil {
			return nil, err
		}
		qty := p.Quantity
		if qty == 0 {
			qty = 1
		}
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		product, err := domain.NewProduct(id, p.Name, price, weight, qty)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	return domain.NewOrder(orderID, products, *country, date)
}

func quoteRespFrom(out usecase.Result) quoteResp {
	steps := make([]quoteStepResp, 0, len(out.Events))
	for _, event := range out.Events {
		applied, ok := event.(domain.RuleApplied)
		if !ok {
			continue
		}
		steps = append(steps, quoteStepResp{
			Rule:        applied.RuleName(),
			CostBefore:  applied.CostBefore().Format(),
			CostAfter:   applied.CostAfter().Format(),
			Description: applied.Description(),
		})
	}

	return quoteResp{
		OrderID:       out.Order.ID(),
		Country:       out.Order.Country().Code(),
		CartValue:     out.Order.CartValue().Format(),
		TotalWeightKg: out.Order.TotalWeight().Kilograms(),
		ShippingCost:  out.ShippingCost.Format(),
		CostCents:     out.ShippingCost.Cents(),
		FreeShipping:  out.IsFreeShipping(),
		AppliedRules:  out.AppliedRules,
		Steps:         steps,
	}
}
