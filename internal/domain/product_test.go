package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Factory_NewProduct(t *testing.T) {
	testCases := []struct {
		name        string
		productName string
		price       float64
		quantity    float64
		expectError error
	}{
		{name: "Success - valid product", productName: "Apple", price: 2.5, quantity: 4},
		{name: "Success - zero price and quantity", productName: "Sample", price: 0, quantity: 0},
		{name: "Success - fractional quantity", productName: "Cheese", price: 12, quantity: 0.75},
		{name: "Error - empty name", productName: "", price: 1, quantity: 1, expectError: ErrInvalidProductName},
		{name: "Error - whitespace name", productName: "   \t", price: 1, quantity: 1, expectError: ErrInvalidProductName},
		{name: "Error - negative price", productName: "Apple", price: -0.01, quantity: 1, expectError: ErrInvalidProductPrice},
		{name: "Error - NaN price", productName: "Apple", price: math.NaN(), quantity: 1, expectError: ErrInvalidProductPrice},
		{name: "Error - infinite price", productName: "Apple", price: math.Inf(1), quantity: 1, expectError: ErrInvalidProductPrice},
		{name: "Error - negative quantity", productName: "Apple", price: 1, quantity: -1, expectError: ErrInvalidProductQuantity},
		{name: "Error - infinite quantity", productName: "Apple", price: 1, quantity: math.Inf(1), expectError: ErrInvalidProductQuantity},
		{name: "Error - NaN quantity", productName: "Apple", price: 1, quantity: math.NaN(), expectError: ErrInvalidProductQuantity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			factory := NewFactory()
			// when
			p, err := factory.NewProduct(tc.productName, tc.price, tc.quantity)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				assert.Nil(t, p)
				assert.Zero(t, factory.Created())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.price, p.Price())
			assert.Equal(t, tc.quantity, p.Quantity())
			assert.Equal(t, KindStandard, p.Kind())
			assert.NotEmpty(t, p.ID())
			assert.Equal(t, int64(1), factory.Created())
		})
	}
}

func Test_Factory_NewProduct_TrimsName(t *testing.T) {
	p, err := NewFactory().NewProduct("  Bread \n", 3.5, 20)

	require.NoError(t, err)
	assert.Equal(t, "Bread", p.Name())
}

func Test_Factory_NewPerishableProduct(t *testing.T) {
	testCases := []struct {
		name        string
		productName string
		price       float64
		expiration  string
		expectError error
	}{
		{name: "Success - trimmed expiration", productName: "Milk", price: 1.5, expiration: " 2025-01-31 "},
		{name: "Error - empty expiration", productName: "Milk", price: 1.5, expiration: "", expectError: ErrInvalidExpirationDate},
		{name: "Error - whitespace expiration", productName: "Milk", price: 1.5, expiration: "  ", expectError: ErrInvalidExpirationDate},
		{name: "Error - product fields checked first", productName: "", price: 1.5, expiration: "", expectError: ErrInvalidProductName},
		{name: "Error - negative price", productName: "Milk", price: -1, expiration: "2025-01-31", expectError: ErrInvalidProductPrice},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			factory := NewFactory()
			// when
			p, err := factory.NewPerishableProduct(tc.productName, tc.price, 10, tc.expiration)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				assert.Nil(t, p)
				assert.Zero(t, factory.Created(), "failed construction must not be counted")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, KindPerishable, p.Kind())
			assert.Equal(t, "2025-01-31", p.ExpirationDate())
			assert.Equal(t, int64(1), factory.Created())
		})
	}
}

func Test_Factory_CountsEveryConstruction(t *testing.T) {
	factory := NewFactory()

	_, err := factory.NewProduct("Apple", 2.5, 50)
	require.NoError(t, err)
	_, err = factory.NewPerishableProduct("Milk", 1.5, 10, "2025-01-31")
	require.NoError(t, err)
	_, err = factory.NewProduct("", 1, 1)
	require.Error(t, err)

	assert.Equal(t, int64(2), factory.Created())
}

func Test_Product_TotalValue(t *testing.T) {
	testCases := []struct {
		price    float64
		quantity float64
	}{
		{price: 2.5, quantity: 4},
		{price: 1.2, quantity: 40},
		{price: 0.1, quantity: 3},
		{price: 0, quantity: 100},
	}

	for _, tc := range testCases {
		p, err := NewFactory().NewProduct("Item", tc.price, tc.quantity)
		require.NoError(t, err)
		assert.Equal(t, tc.price*tc.quantity, p.TotalValue())
	}
}

func Test_Product_Describe(t *testing.T) {
	factory := NewFactory()
	apple, err := factory.NewProduct("Apple", 2.5, 4)
	require.NoError(t, err)
	milk, err := factory.NewPerishableProduct("Milk", 1.5, 10, "2025-01-31")
	require.NoError(t, err)
	cheese, err := factory.NewProduct("Cheese", 12, 0.75)
	require.NoError(t, err)

	assert.Equal(t, "Product: Apple, Price: $2.50, Quantity: 4", apple.Describe())
	assert.Equal(t, "Product: Milk, Price: $1.50, Quantity: 10, Expiration Date: 2025-01-31", milk.Describe())
	assert.Equal(t, "Product: Cheese, Price: $12.00, Quantity: 0.75", cheese.Describe())
	assert.Equal(t, apple.Describe(), apple.String())
}

func Test_Product_Describe_QuantityNotation(t *testing.T) {
	testCases := []struct {
		quantity float64
		expected string
	}{
		{quantity: 0, expected: "0"},
		{quantity: 0.000001, expected: "0.000001"},
		{quantity: 0.00000015, expected: "1.5e-7"},
		{quantity: 123456789012345680000, expected: "123456789012345680000"},
		{quantity: 1e21, expected: "1e+21"},
		{quantity: 2.5e22, expected: "2.5e+22"},
	}

	for _, tc := range testCases {
		p, err := NewFactory().NewProduct("Dust", 1, tc.quantity)
		require.NoError(t, err)
		assert.Equal(t, "Product: Dust, Price: $1.00, Quantity: "+tc.expected, p.Describe())
	}
}

func Test_Product_Clone(t *testing.T) {
	// given
	factory := NewFactory()
	milk, err := factory.NewPerishableProduct("Milk", 1.5, 10, "2025-01-31")
	require.NoError(t, err)

	// when
	clone := milk.Clone()
	ApplyDiscount([]*Product{milk}, 0.5)

	// then
	assert.Equal(t, 1.5, clone.Price(), "clone keeps the price it was taken with")
	assert.Equal(t, 0.75, milk.Price())
	assert.Equal(t, milk.ID(), clone.ID())
	assert.Equal(t, milk.ExpirationDate(), clone.ExpirationDate())
	assert.Equal(t, int64(1), factory.Created(), "cloning is not a construction")
	assert.Nil(t, (*Product)(nil).Clone())
}

func Test_ParseKind(t *testing.T) {
	testCases := []struct {
		in       string
		expected Kind
		ok       bool
	}{
		{in: "", expected: KindStandard, ok: true},
		{in: "standard", expected: KindStandard, ok: true},
		{in: " Perishable ", expected: KindPerishable, ok: true},
		{in: "frozen", expected: KindStandard, ok: false},
	}

	for _, tc := range testCases {
		kind, ok := ParseKind(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.expected, kind, tc.in)
	}
}
