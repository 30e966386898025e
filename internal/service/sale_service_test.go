package service

import (
	"testing"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleServiceForValidation() SaleService {
	// Requests rejected during validation never reach the database.
	return NewSaleService(nil, newFakeSaleRepo(), nil, nil, newFakeRegisterRepo(), runningHub())
}

func TestSaleRecord_RejectsZeroQuantity(t *testing.T) {
	svc := newSaleServiceForValidation()

	_, err := svc.Record(&RecordSaleRequest{
		ProductID: uuid.New().String(),
		Type:      model.SaleTypeSale,
		Quantity:  0,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestSaleRecord_RejectsUnknownType(t *testing.T) {
	svc := newSaleServiceForValidation()

	_, err := svc.Record(&RecordSaleRequest{
		ProductID: uuid.New().String(),
		Type:      "REFUND",
		Quantity:  1,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestSaleRecord_PurchaseRequiresSupplier(t *testing.T) {
	svc := newSaleServiceForValidation()

	_, err := svc.Record(&RecordSaleRequest{
		ProductID: uuid.New().String(),
		Type:      model.SaleTypePurchase,
		Quantity:  5,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Contains(t, apperr.Message(err), "Supplier")
}

func TestSaleRecord_RejectsMalformedProductID(t *testing.T) {
	svc := newSaleServiceForValidation()

	_, err := svc.Record(&RecordSaleRequest{
		ProductID: "not-a-uuid",
		Type:      model.SaleTypeSale,
		Quantity:  1,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestSaleSummary_RangeKeys(t *testing.T) {
	svc := newSaleServiceForValidation()

	for _, key := range []string{"", "7d", "1m", "3m", "6m", "12m"} {
		summary, err := svc.Summary(key)
		require.NoError(t, err, "range %q", key)
		assert.NotNil(t, summary)
	}

	_, err := svc.Summary("90y")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}
