package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/parcel"
	"freightops/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPackageUoW struct{ mock.Mock }

func (m *MockPackageUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

func (m *MockPackageUoW) PackageLogRepository() ports.PackageLogRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageLogRepository)
}

func (m *MockPackageUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockPackageUoWFactory struct{ mock.Mock }

func (m *MockPackageUoWFactory) Create() commands.PackageUoW {
	args := m.Called()
	return args.Get(0).(commands.PackageUoW)
}

func TestRegisterPackageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	packageID := kernel.NewPackageID()
	actorID := kernel.NewActorID()
	cmd, err := commands.NewRegisterPackageCommand(packageID, actorID, "manifest 81")
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	logRepo := new(MockPackageLogRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockPackageUoW)

	appendedEntry, err := parcel.RestoreLogEntry(
		1, packageID, parcel.Incoming, actorID, "manifest 81", time.Now(),
	)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		uow.On("PackageLogRepository").Return(logRepo).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		packageRepo.On("Add", ctx, mock.AnythingOfType("*parcel.Package")).Return(nil).Once(),
		logRepo.On("Append", ctx, mock.AnythingOfType("parcel.LogEntry")).
			Return(appendedEntry, nil).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("[]outbox.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterPackageCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	packageRepo.AssertExpectations(t)
	logRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterPackageCommandHandler_Handle_AppendErrorRollsBack(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewRegisterPackageCommand(kernel.NewPackageID(), kernel.NewActorID(), "")
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	logRepo := new(MockPackageLogRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockPackageUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		uow.On("PackageLogRepository").Return(logRepo).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		packageRepo.On("Add", ctx, mock.AnythingOfType("*parcel.Package")).Return(nil).Once(),
		logRepo.On("Append", ctx, mock.AnythingOfType("parcel.LogEntry")).
			Return(parcel.LogEntry{}, errors.New("write failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterPackageCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "write failed")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRegisterPackageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.RegisterPackageCommand

	factory := new(MockPackageUoWFactory)
	handler := commands.NewRegisterPackageCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRegisterPackageCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
