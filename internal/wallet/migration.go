package wallet

import (
	"context"
)

// Migrate moves accounts out of the legacy record store, re-inserting each
// through Create with its identity-bearing fields and deleting the legacy
// record afterwards. Cosmetic fields are re-derived unless the legacy
// record carried them. Running it with no legacy records left is a no-op,
// so callers may invoke it on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	records, err := s.repo.ReadLegacy(ctx)
	if err != nil {
		return err
	}

	for _, record := range records {
		if _, err := s.Create(ctx, record.Name, CreateParams{
			Address:   record.Address,
			AccountID: record.AccountID,
			Path:      record.Path,
			Type:      record.Type,
			CardStyle: record.CardStyle,
			Pattern:   record.Pattern,
		}); err != nil {
			return err
		}
		if err := s.repo.DeleteLegacy(ctx, record.Address); err != nil {
			return err
		}
		s.logger.Info("migrated legacy wallet", "address", record.Address)
	}

	return nil
}
