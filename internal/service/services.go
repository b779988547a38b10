package service

import (
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/config"
	"github.com/amterp/dairy/internal/store"
)

// Services bundles every service over one data directory.
type Services struct {
	Animals *AnimalService
	Staff   *StaffService
	Milk    *MilkService
	Auth    *AuthService
}

// NewServices wires file-backed stores under paths into services.
func NewServices(paths *config.Paths, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	storeLog := logger.Named("store")

	animals := store.NewRecordStore(paths.AnimalStorePath(), store.AnimalKind, storeLog)
	staff := store.NewRecordStore(paths.StaffStorePath(), store.StaffKind, storeLog)
	milk := store.NewRecordStore(paths.MilkStorePath(), store.MilkKind, storeLog)
	staffLogins := store.NewCredentialStore(paths.StaffLoginPath(), storeLog)
	ownerLogins := store.NewCredentialStore(paths.OwnerLoginPath(), storeLog)

	return &Services{
		Animals: NewAnimalService(animals, logger.Named("animals")),
		Staff:   NewStaffService(staff, logger.Named("staff")),
		Milk:    NewMilkService(milk, logger.Named("milk")),
		Auth:    NewAuthService(staffLogins, ownerLogins, logger.Named("auth")),
	}
}

// EnsureStores creates every store and login file that is missing.
func EnsureStores(paths *config.Paths) error {
	if err := paths.EnsureDataDir(); err != nil {
		return err
	}
	return store.EnsureExists(paths.StorePaths()...)
}
