// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freightops/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// PackageLogRepoFactory provides access to the package status log within a transaction.
	PackageLogRepoFactory interface {
		PackageLogRepository() ports.PackageLogRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ShipmentLogRepoFactory provides access to the shipment status log within a transaction.
	ShipmentLogRepoFactory interface {
		ShipmentLogRepository() ports.ShipmentLogRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// PackageUoW manages transactions for single-package operations:
	// registration, marking missing, archival. Every package status
	// change appends to the log, refreshes the status cache and queues
	// an outbox event inside one transaction.
	PackageUoW interface {
		TxManager
		PackageRepoFactory
		PackageLogRepoFactory
		OutboxRepoFactory
	}

	// PackageUoWFactory creates new package unit of work instances.
	PackageUoWFactory interface {
		Create() PackageUoW
	}

	// MissingUoW manages the missing-report transaction. A missing report
	// touches both aggregates: the package log and cache, plus the open
	// membership row if the package is currently riding a leg.
	MissingUoW interface {
		TxManager
		PackageRepoFactory
		PackageLogRepoFactory
		ShipmentRepoFactory
		OutboxRepoFactory
	}

	// MissingUoWFactory creates new missing-report unit of work instances.
	MissingUoWFactory interface {
		Create() MissingUoW
	}

	// ScanUoW manages transactions for scan batches. A scan reads the
	// shipment for membership, resolves current statuses from the log,
	// then atomically appends accepted entries and updates the package
	// and member status caches.
	ScanUoW interface {
		TxManager
		ShipmentRepoFactory
		PackageRepoFactory
		PackageLogRepoFactory
		OutboxRepoFactory
	}

	// ScanUoWFactory creates new scan unit of work instances.
	ScanUoWFactory interface {
		Create() ScanUoW
	}

	// ShipmentUoW manages transactions that change shipment state:
	// creation and status advancement. Creation verifies member packages
	// and advancement resolves their statuses, so it spans both aggregates
	// even though only the shipment side is written.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		ShipmentLogRepoFactory
		PackageRepoFactory
		PackageLogRepoFactory
		OutboxRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}
)
