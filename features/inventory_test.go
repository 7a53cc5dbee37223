package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/mrops-br/store-inventory-api/internal/domain"
)

type inventoryTestContext struct {
	factory  *domain.Factory
	store    *domain.Store
	repriced int
	err      error
}

func (c *inventoryTestContext) reset() {
	c.factory = domain.NewFactory()
	c.store = domain.NewStore()
	c.repriced = 0
	c.err = nil
}

func (c *inventoryTestContext) anEmptyStore() error {
	c.reset()
	return nil
}

func (c *inventoryTestContext) aProduct(name string, price, quantity float64) error {
	p, err := c.factory.NewProduct(name, price, quantity)
	if err != nil {
		return err
	}
	c.store.AddProduct(p)
	return nil
}

func (c *inventoryTestContext) aPerishableProduct(name string, price, quantity float64, expires string) error {
	p, err := c.factory.NewPerishableProduct(name, price, quantity, expires)
	if err != nil {
		return err
	}
	c.store.AddProduct(p)
	return nil
}

func (c *inventoryTestContext) aProductIsConstructed(name string, price, quantity float64) error {
	_, c.err = c.factory.NewProduct(name, price, quantity)
	return nil
}

func (c *inventoryTestContext) aDiscountIsApplied(discount float64) error {
	c.repriced = domain.ApplyDiscount(c.store.Products(), discount)
	return nil
}

func (c *inventoryTestContext) theInventoryValueIs(expected string) error {
	if got := domain.FormatMoney(c.store.InventoryValue()); got != expected {
		return fmt.Errorf("expected inventory value %s, got %s", expected, got)
	}
	return nil
}

func (c *inventoryTestContext) productsHaveBeenConstructed(expected int) error {
	if got := c.factory.Created(); got != int64(expected) {
		return fmt.Errorf("expected %d constructions, got %d", expected, got)
	}
	return nil
}

func (c *inventoryTestContext) productsWereRepriced(expected int) error {
	if c.repriced != expected {
		return fmt.Errorf("expected %d repriced products, got %d", expected, c.repriced)
	}
	return nil
}

func (c *inventoryTestContext) thePriceOfIs(name string, expected float64) error {
	p, err := c.store.FindProductByName(name)
	if err != nil {
		return err
	}
	if p.Price() != expected {
		return fmt.Errorf("expected %s to cost %v, got %v", name, expected, p.Price())
	}
	return nil
}

func (c *inventoryTestContext) findingReturns(name, expected string) error {
	p, err := c.store.FindProductByName(name)
	if err != nil {
		return err
	}
	if got := p.Describe(); got != expected {
		return fmt.Errorf("expected %q, got %q", expected, got)
	}
	return nil
}

func (c *inventoryTestContext) findingReturnsNothing(name string) error {
	if _, err := c.store.FindProductByName(name); !errors.Is(err, domain.ErrProductNotFound) {
		return fmt.Errorf("expected no match for %q, got %v", name, err)
	}
	return nil
}

func (c *inventoryTestContext) constructionFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected construction to fail")
	}
	if !errors.Is(c.err, domain.ErrInvalidArgument) || !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %v", msg, c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &inventoryTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty store$`, tc.anEmptyStore)
	ctx.Step(`^a product "([^"]*)" priced (-?[\d.]+) with quantity ([\d.]+)$`, tc.aProduct)
	ctx.Step(`^a perishable product "([^"]*)" priced ([\d.]+) with quantity ([\d.]+) expiring "([^"]*)"$`, tc.aPerishableProduct)

	// When steps
	ctx.Step(`^a product "([^"]*)" priced (-?[\d.]+) with quantity ([\d.]+) is constructed$`, tc.aProductIsConstructed)
	ctx.Step(`^a discount of ([\d.]+) is applied$`, tc.aDiscountIsApplied)

	// Then steps
	ctx.Step(`^the inventory value is "([^"]*)"$`, tc.theInventoryValueIs)
	ctx.Step(`^(\d+) products have been constructed$`, tc.productsHaveBeenConstructed)
	ctx.Step(`^(\d+) products were repriced$`, tc.productsWereRepriced)
	ctx.Step(`^the price of "([^"]*)" is ([\d.]+)$`, tc.thePriceOfIs)
	ctx.Step(`^finding "([^"]*)" returns "([^"]*)"$`, tc.findingReturns)
	ctx.Step(`^finding "([^"]*)" returns nothing$`, tc.findingReturnsNothing)
	ctx.Step(`^construction fails with "([^"]*)"$`, tc.constructionFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"inventory.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
