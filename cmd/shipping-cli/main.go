package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/parcelio/shipping-api/internal/adapter/repo"
	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/shipping"
	"github.com/parcelio/shipping-api/internal/usecase"
)

func main() {
	var (
		countryCode = flag.String("country", "PL", "destination country code")
		weightKg    = flag.Float64("weight", 1.0, "total order weight in kilograms")
		valueCents  = flag.Int64("value", 10000, "cart value in cents")
		products    = flag.String("products", "", "line items as name:priceCents:weightGrams[:qty], comma separated; overrides -weight/-value")
		dateStr     = flag.String("date", "", "order date (YYYY-MM-DD), today if empty")
		dsn         = flag.String("dsn", "", "mysql dsn; built-in reference config if empty")
		recreateDB  = flag.Bool("recreate-db", false, "drop and recreate the schema with seed data (requires -dsn)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *recreateDB {
		if *dsn == "" {
			log.Fatal("-recreate-db requires -dsn")
		}
		db, err := sql.Open("mysql", *dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := repo.RecreateSchema(ctx, db); err != nil {
			log.Fatal(err)
		}
		fmt.Println("schema recreated with seed data")
		return
	}

	countries, rules, closer, err := buildEngine(*dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer closer()

	order, err := buildOrder(ctx, countries, *countryCode, *weightKg, *valueCents, *products, *dateStr)
	if err != nil {
		log.Fatal(err)
	}

	calc := usecase.NewCalculateShipping(rules, nil, nil)
	out, err := calc.Execute(ctx, order)
	if err != nil {
		log.Fatal(err)
	}

	printResult(out)
}

func buildEngine(dsn string) (usecase.CountryRepository, []shipping.Rule, func(), error) {
	if dsn == "" {
		countries := repo.DefaultCountryRepo()
		rules := []shipping.Rule{
			shipping.NewBaseCountryRateRule(repo.DefaultBaseRateLoader(), 100),
			shipping.NewWeightSurchargeRule(repo.DefaultWeightSurchargeLoader(), 200),
			shipping.NewFreeShippingRule(repo.DefaultFreeShippingLoader(countries), 300),
			shipping.NewHalfPriceShippingRule(repo.DefaultHalfPriceLoader(countries), 305),
			shipping.NewFridayPromotionRule(repo.DefaultFridayPromotionLoader(), 400),
		}
		return countries, rules, func() {}, nil
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, nil, err
	}
	countries := repo.NewMySQLCountryRepo(db)
	rules := []shipping.Rule{
		shipping.NewBaseCountryRateRule(repo.NewMySQLBaseRateConfigRepo(db, countries), 100),
		shipping.NewWeightSurchargeRule(repo.NewMySQLWeightSurchargeConfigRepo(db), 200),
		shipping.NewFreeShippingRule(repo.NewMySQLFreeShippingConfigRepo(db, countries), 300),
		shipping.NewHalfPriceShippingRule(repo.NewMySQLHalfPriceConfigRepo(db, countries), 305),
		shipping.NewFridayPromotionRule(repo.NewMySQLFridayPromotionConfigRepo(db), 400),
	}
	return countries, rules, func() { _ = db.Close() }, nil
}

func buildOrder(ctx context.Context, countries usecase.CountryRepository, code string, weightKg float64, valueCents int64, productSpec, dateStr string) (*domain.Order, error) {
	country, err := countries.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, fmt.Errorf("unknown country %q", code)
	}

	date := domain.Today()
	if dateStr != "" {
		date, err = domain.ParseOrderDate(dateStr)
		if err != nil {
			return nil, err
		}
	}

	var products []domain.Product
	if productSpec != "" {
		products, err = parseProducts(productSpec)
		if err != nil {
			return nil, err
		}
	} else {
		price, err := domain.NewMoney(valueCents, domain.PLN)
		if err != nil {
			return nil, err
		}
		weight, err := domain.WeightFromKilograms(weightKg)
		if err != nil {
			return nil, err
		}
		products = []domain.Product{domain.NewUnitProduct(uuid.NewString(), "cart", price, weight)}
	}

	return domain.NewOrder(uuid.NewString(), products, *country, date)
}

// parseProducts reads "name:priceCents:weightGrams[:qty]" items.
func parseProducts(spec string) ([]domain.Product, error) {
	var out []domain.Product
	for _, item := range strings.Split(spec, ",") {
		parts := strings.Split(strings.TrimSpace(item), ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, fmt.Errorf("invalid product %q: expected name:priceCents:weightGrams[:qty]", item)
		}
		priceCents, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price in %q: %w", item, err)
		}
		weightGrams, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q: %w", item, err)
		}
		qty := int64(1)
		if len(parts) == 4 {
			qty, err = strconv.ParseInt(parts[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid quantity in %q: %w", item, err)
			}
		}

		price, err := domain.NewMoney(priceCents, domain.PLN)
		if err != nil {
			return nil, err
		}
		weight, err := domain.WeightFromGrams(weightGrams)
		if err != nil {
			return nil, err
		}
		p, err := domain.NewProduct(uuid.NewString(), parts[0], price, weight, qty)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func printResult(out usecase.Result) {
	fmt.Printf("order    %s\n", out.Order.ID())
	fmt.Printf("country  %s\n", out.Order.Country().Code())
	fmt.Printf("cart     %s, %s\n", out.Order.CartValue().Format(), out.Order.TotalWeight().Format())
	fmt.Println()
	for _, event := range out.Events {
		applied, ok := event.(domain.RuleApplied)
		if !ok {
			continue
		}
		fmt.Printf("  %-20s %s -> %s  (%s)\n",
			applied.RuleName(), applied.CostBefore().Format(), applied.CostAfter().Format(), applied.Description())
	}
	fmt.Println()
	if out.IsFreeShipping() {
		fmt.Println("shipping: FREE")
	} else {
		fmt.Printf("shipping: %s\n", out.ShippingCost.Format())
	}
}
