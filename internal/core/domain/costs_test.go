package domain_test

import (
	"testing"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionCosts(t *testing.T) {
	costs, err := domain.NewProductionCosts(
		decimal.NewFromInt(10),
		decimal.NewFromInt(5),
		decimal.NewFromInt(20),
	)
	require.NoError(t, err)
	assert.True(t, costs.Total().Equal(decimal.NewFromInt(35)))
}

func TestNewProductionCosts_RejectsNegative(t *testing.T) {
	_, err := domain.NewProductionCosts(
		decimal.NewFromInt(-1),
		decimal.NewFromInt(5),
		decimal.NewFromInt(20),
	)
	assert.Error(t, err)

	_, err = domain.NewProductionCosts(
		decimal.NewFromInt(1),
		decimal.NewFromInt(5),
		decimal.NewFromInt(-20),
	)
	assert.Error(t, err)
}

func TestProductionCosts_Add(t *testing.T) {
	a, err := domain.NewProductionCosts(decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(3))
	require.NoError(t, err)
	b, err := domain.NewProductionCosts(decimal.NewFromInt(10), decimal.NewFromInt(20), decimal.NewFromInt(30))
	require.NoError(t, err)

	sum := a.Add(b)
	assert.True(t, sum.LabourCost.Equal(decimal.NewFromInt(11)))
	assert.True(t, sum.ResourceCost.Equal(decimal.NewFromInt(22)))
	assert.True(t, sum.MeansCost.Equal(decimal.NewFromInt(33)))
	assert.True(t, sum.Total().Equal(decimal.NewFromInt(66)))
}

func TestProductionCosts_Div(t *testing.T) {
	costs, err := domain.NewProductionCosts(decimal.NewFromInt(10), decimal.NewFromInt(20), decimal.NewFromInt(30))
	require.NoError(t, err)

	divided, err := costs.Div(decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, divided.LabourCost.Equal(decimal.NewFromInt(1)))
	assert.True(t, divided.ResourceCost.Equal(decimal.NewFromInt(2)))
	assert.True(t, divided.MeansCost.Equal(decimal.NewFromInt(3)))

	_, err = costs.Div(decimal.Zero)
	assert.Error(t, err)
}

func TestZeroCosts(t *testing.T) {
	assert.True(t, domain.ZeroCosts().Total().IsZero())
}
