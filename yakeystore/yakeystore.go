// Package yakeystore persists RSA key pairs in a GORM-backed database.
//
// Key material is ephemeral for the core; this package is the optional
// collaborator for sessions that want to reuse a pair. Each key is stored as
// its own record (modulus + one exponent, hex), with the public and private
// halves of a pair linked by a shared pair ID, so either half can be handed
// out without touching the other.
package yakeystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yarsa"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Role distinguishes the two records of a pair.
const (
	RolePublic  = "public"
	RolePrivate = "private"
)

// IKeyStore defines the persistence operations the interactive session uses.
type IKeyStore interface {
	// SaveKeyPair stores a key pair under a session-chosen name, replacing
	// any pair previously stored under that name.
	//
	// Example usage:
	//
	//   pairID, err := store.SaveKeyPair(ctx, "demo", pair)
	SaveKeyPair(ctx context.Context, name string, pair *yarsa.KeyPair) (uuid.UUID, yaerrors.Error)

	// FetchKeyPair loads and reassembles the pair stored under name.
	//
	// Example usage:
	//
	//   pair, err := store.FetchKeyPair(ctx, "demo")
	FetchKeyPair(ctx context.Context, name string) (*yarsa.KeyPair, yaerrors.Error)

	// ListNames returns the names of every stored pair.
	//
	// Example usage:
	//
	//   names, err := store.ListNames(ctx)
	ListNames(ctx context.Context) ([]string, yaerrors.Error)

	// DeletePair removes both records of the named pair.
	//
	// Example usage:
	//
	//   err := store.DeletePair(ctx, "demo")
	DeletePair(ctx context.Context, name string) yaerrors.Error
}

// KeyRecord is the database model for one stored key. A pair occupies two
// rows sharing PairID, one per role.
type KeyRecord struct {
	ID        string    `gorm:"primaryKey"`
	PairID    string    `gorm:"index"`
	Name      string    `gorm:"uniqueIndex:idx_name_role"`
	Role      string    `gorm:"uniqueIndex:idx_name_role"`
	Record    string    `gorm:"type:text"`
	Bits      int
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// GormKeyStore is the repository that manages key records in a GORM-backed
// database.
type GormKeyStore struct {
	poolDB *gorm.DB
}

// OpenSQLite opens (creating if needed) a SQLite database at path and returns
// a key store over it.
//
// Example usage:
//
//	store, err := yakeystore.OpenSQLite("yarsa-keys.db")
func OpenSQLite(path string) (*GormKeyStore, yaerrors.Error) {
	poolDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, yaerrors.FromError(
			yaerrors.CodeInternal,
			err,
			"failed to open sqlite keystore",
		)
	}

	return NewGormKeyStore(poolDB)
}

// NewGormKeyStore creates a new GormKeyStore and runs the migrations for the
// KeyRecord model.
func NewGormKeyStore(poolDB *gorm.DB) (*GormKeyStore, yaerrors.Error) {
	if err := poolDB.AutoMigrate(&KeyRecord{}); err != nil {
		return nil, yaerrors.FromError(
			yaerrors.CodeInternal,
			err,
			"failed to make auto migrate",
		)
	}

	return &GormKeyStore{poolDB: poolDB}, nil
}

// SaveKeyPair stores the two records of a pair under name, upserting over any
// previous pair with the same name.
func (g *GormKeyStore) SaveKeyPair(
	ctx context.Context,
	name string,
	pair *yarsa.KeyPair,
) (uuid.UUID, yaerrors.Error) {
	if name == "" {
		return uuid.Nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrEmptyName,
			"save key pair",
		)
	}

	pairID := uuid.New()

	records := []KeyRecord{
		{
			ID:     uuid.NewString(),
			PairID: pairID.String(),
			Name:   name,
			Role:   RolePublic,
			Record: pair.Public().MarshalRecord(),
			Bits:   pair.Bits(),
		},
		{
			ID:     uuid.NewString(),
			PairID: pairID.String(),
			Name:   name,
			Role:   RolePrivate,
			Record: pair.Private().MarshalRecord(),
			Bits:   pair.Bits(),
		},
	}

	if err := g.poolDB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"pair_id", "record", "bits"}),
		}).
		Create(&records).Error; err != nil {
		return uuid.Nil, yaerrors.FromError(
			yaerrors.CodeInternal,
			err,
			"failed to save key pair records",
		)
	}

	return pairID, nil
}

// FetchKeyPair loads both records stored under name and reassembles the pair,
// verifying the halves agree on the modulus.
func (g *GormKeyStore) FetchKeyPair(
	ctx context.Context,
	name string,
) (*yarsa.KeyPair, yaerrors.Error) {
	if name == "" {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrEmptyName,
			"fetch key pair",
		)
	}

	var records []KeyRecord

	if err := g.poolDB.WithContext(ctx).
		Where(&KeyRecord{Name: name}).
		Find(&records).Error; err != nil {
		return nil, yaerrors.FromError(
			yaerrors.CodeInternal,
			err,
			"failed to fetch key pair records",
		)
	}

	if len(records) == 0 {
		return nil, yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrPairNotFound,
			fmt.Sprintf("fetch key pair: %q", name),
		)
	}

	var public, private *yarsa.Key

	for _, record := range records {
		key, err := yarsa.ParseKeyRecord(record.Record)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("fetch key pair: %s record", record.Role))
		}

		switch record.Role {
		case RolePublic:
			public = &key
		case RolePrivate:
			private = &key
		}
	}

	if public == nil || private == nil {
		return nil, yaerrors.FromError(
			yaerrors.CodeInternal,
			ErrPairIncomplete,
			fmt.Sprintf("fetch key pair: %q", name),
		)
	}

	if public.N.Cmp(private.N) != 0 {
		return nil, yaerrors.FromError(
			yaerrors.CodeInternal,
			ErrModulusMismatch,
			fmt.Sprintf("fetch key pair: %q", name),
		)
	}

	return &yarsa.KeyPair{N: public.N, E: public.Exp, D: private.Exp}, nil
}

// ListNames returns the distinct names of stored pairs.
func (g *GormKeyStore) ListNames(ctx context.Context) ([]string, yaerrors.Error) {
	var names []string

	if err := g.poolDB.WithContext(ctx).
		Model(&KeyRecord{}).
		Distinct("name").
		Order("name").
		Pluck("name", &names).Error; err != nil {
		return nil, yaerrors.FromError(
			yaerrors.CodeInternal,
			err,
			"failed to list key pair names",
		)
	}

	return names, nil
}

// DeletePair removes both records of the named pair. Deleting a pair that is
// not stored reports ErrPairNotFound.
func (g *GormKeyStore) DeletePair(ctx context.Context, name string) yaerrors.Error {
	if name == "" {
		return yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrEmptyName,
			"delete key pair",
		)
	}

	result := g.poolDB.WithContext(ctx).
		Where(&KeyRecord{Name: name}).
		Delete(&KeyRecord{})

	if err := result.Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return yaerrors.FromError(
			yaerrors.CodeInternal,
			err,
			"failed to delete key pair records",
		)
	}

	if result.RowsAffected == 0 {
		return yaerrors.FromError(
			yaerrors.CodeInvalidInput,
			ErrPairNotFound,
			fmt.Sprintf("delete key pair: %q", name),
		)
	}

	return nil
}
