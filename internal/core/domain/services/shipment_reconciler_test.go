package services_test

import (
	"testing"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreShipment(
	t *testing.T,
	shipmentType shipment.Type,
	status shipment.Status,
	members ...shipment.Member,
) *shipment.Shipment {
	t.Helper()
	id, err := kernel.NewShipmentID(1)
	require.NoError(t, err)
	s, err := shipment.RestoreShipment(id, shipmentType, status, members)
	require.NoError(t, err)
	return s
}

func member(t *testing.T, packageID kernel.PackageID) shipment.Member {
	t.Helper()
	m, err := shipment.RestoreMember(packageID, shipment.MemberInTransit)
	require.NoError(t, err)
	return m
}

func TestShipmentReconciler_CanAdvance(t *testing.T) {
	reconciler := services.NewShipmentReconciler()
	p1 := kernel.NewPackageID()
	p2 := kernel.NewPackageID()
	p3 := kernel.NewPackageID()

	t.Run("blocked_with_exactly_the_lagging_package", func(t *testing.T) {
		shp := restoreShipment(t, shipment.TypeTransferWarehouse, shipment.InTransit,
			member(t, p1), member(t, p2), member(t, p3))
		resolved := map[kernel.PackageID]parcel.Status{
			p1: parcel.InWarehouse,
			p2: parcel.InWarehouse,
			p3: parcel.TransferringWarehouse,
		}

		result, err := reconciler.CanAdvance(shp, shipment.Arrived, resolved)

		require.NoError(t, err)
		assert.False(t, result.Allowed)
		require.Len(t, result.BlockingPackageIDs, 1)
		assert.True(t, result.BlockingPackageIDs[0].IsEqual(p3))
	})

	t.Run("allowed_once_every_member_is_there", func(t *testing.T) {
		shp := restoreShipment(t, shipment.TypeTransferWarehouse, shipment.InTransit,
			member(t, p1), member(t, p2), member(t, p3))
		resolved := map[kernel.PackageID]parcel.Status{
			p1: parcel.InWarehouse,
			p2: parcel.InWarehouse,
			p3: parcel.InWarehouse,
		}

		result, err := reconciler.CanAdvance(shp, shipment.Arrived, resolved)

		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Empty(t, result.BlockingPackageIDs)
	})

	t.Run("in_transit_requires_the_pre_transit_status", func(t *testing.T) {
		shp := restoreShipment(t, shipment.TypeDelivery, shipment.Preparing,
			member(t, p1), member(t, p2))
		resolved := map[kernel.PackageID]parcel.Status{
			p1: parcel.OutForDelivery,
			p2: parcel.Sorting,
		}

		result, err := reconciler.CanAdvance(shp, shipment.InTransit, resolved)

		require.NoError(t, err)
		assert.False(t, result.Allowed)
		require.Len(t, result.BlockingPackageIDs, 1)
		assert.True(t, result.BlockingPackageIDs[0].IsEqual(p2))
	})

	t.Run("empty_shipment_is_always_rejected", func(t *testing.T) {
		shp := restoreShipment(t, shipment.TypeDelivery, shipment.Preparing)

		_, err := reconciler.CanAdvance(shp, shipment.InTransit, nil)

		require.ErrorIs(t, err, shipment.ErrShipmentHasNoPackages)
	})

	t.Run("illegal_graph_edge_is_an_error", func(t *testing.T) {
		shp := restoreShipment(t, shipment.TypeDelivery, shipment.Preparing, member(t, p1))
		resolved := map[kernel.PackageID]parcel.Status{p1: parcel.Delivered}

		_, err := reconciler.CanAdvance(shp, shipment.Completed, resolved)

		require.Error(t, err)
	})

	t.Run("wrong_terminal_for_the_leg_type_is_an_error", func(t *testing.T) {
		shp := restoreShipment(t, shipment.TypeDelivery, shipment.InTransit, member(t, p1))
		resolved := map[kernel.PackageID]parcel.Status{p1: parcel.Delivered}

		_, err := reconciler.CanAdvance(shp, shipment.Arrived, resolved)

		require.Error(t, err)
	})

	t.Run("member_without_resolved_status_is_an_error", func(t *testing.T) {
		shp := restoreShipment(t, shipment.TypeDelivery, shipment.InTransit, member(t, p1))

		_, err := reconciler.CanAdvance(shp, shipment.Completed, nil)

		require.ErrorIs(t, err, services.ErrResolvedStatusMissing)
	})

	t.Run("terminal_shipment_cannot_be_reopened", func(t *testing.T) {
		shp := restoreShipment(t, shipment.TypeIncoming, shipment.Arrived, member(t, p1))
		resolved := map[kernel.PackageID]parcel.Status{p1: parcel.InWarehouse}

		_, err := reconciler.CanAdvance(shp, shipment.InTransit, resolved)

		require.Error(t, err)
	})
}
