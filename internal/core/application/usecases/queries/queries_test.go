package queries_test

import (
	"testing"

	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetLatestStatusQuery(t *testing.T) {
	packageID := kernel.NewPackageID()

	query, err := queries.NewGetLatestStatusQuery(packageID)
	require.NoError(t, err)
	assert.Equal(t, packageID, query.PackageID())
	require.NoError(t, query.Validate())

	_, err = queries.NewGetLatestStatusQuery(kernel.PackageID{})
	require.Error(t, err)

	var zero queries.GetLatestStatusQuery
	err = zero.Validate()
	require.ErrorIs(t, err, queries.ErrGetLatestStatusQueryIsNotConstructed)
}

func TestNewGetShipmentPackageStatusesQuery(t *testing.T) {
	shipmentID, err := kernel.NewShipmentID(5)
	require.NoError(t, err)

	query, err := queries.NewGetShipmentPackageStatusesQuery(shipmentID)
	require.NoError(t, err)
	assert.Equal(t, shipmentID, query.ShipmentID())

	_, err = queries.NewGetShipmentPackageStatusesQuery(kernel.ShipmentID{})
	require.Error(t, err)

	var zero queries.GetShipmentPackageStatusesQuery
	err = zero.Validate()
	require.ErrorIs(t, err, queries.ErrGetShipmentPackageStatusesQueryIsNotConstructed)
}

func TestNewCanAdvanceShipmentQuery(t *testing.T) {
	shipmentID, err := kernel.NewShipmentID(5)
	require.NoError(t, err)

	query, err := queries.NewCanAdvanceShipmentQuery(shipmentID, shipment.InTransit)
	require.NoError(t, err)
	assert.Equal(t, shipmentID, query.ShipmentID())
	assert.Equal(t, shipment.InTransit, query.TargetStatus())

	_, err = queries.NewCanAdvanceShipmentQuery(shipmentID, shipment.StatusUnknown)
	require.Error(t, err)

	var zero queries.CanAdvanceShipmentQuery
	err = zero.Validate()
	require.ErrorIs(t, err, queries.ErrCanAdvanceShipmentQueryIsNotConstructed)
}

func TestNewGetPackageHistoryQuery(t *testing.T) {
	packageID := kernel.NewPackageID()

	query, err := queries.NewGetPackageHistoryQuery(packageID)
	require.NoError(t, err)
	assert.Equal(t, packageID, query.PackageID())

	_, err = queries.NewGetPackageHistoryQuery(kernel.PackageID{})
	require.Error(t, err)

	var zero queries.GetPackageHistoryQuery
	err = zero.Validate()
	require.ErrorIs(t, err, queries.ErrGetPackageHistoryQueryIsNotConstructed)
}
