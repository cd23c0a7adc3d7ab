package bundler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gopkg.in/yaml.v3"

	"github.com/spicery/structasm/pkg/common"
	"github.com/spicery/structasm/pkg/expander"
)

// Bundler stores expanded units in a SQLite bundle, skipping sources whose
// contents have not changed since they were last stored.
type Bundler struct {
	db      *gorm.DB
	buildID string
	log     zerolog.Logger
}

// NewBundler creates a new bundler with the given database connection.
func NewBundler(dbPath string, log zerolog.Logger) (*Bundler, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Bundler{db: db, log: log}, nil
}

// Migrate performs database migrations.
func (b *Bundler) Migrate() error {
	return Migrate(b.db)
}

// CheckMigration checks if the database schema is up to date.
func (b *Bundler) CheckMigration() (bool, error) {
	return CheckMigration(b.db)
}

// BeginBuild records a new bundling run; units stored afterwards refer to it.
func (b *Bundler) BeginBuild(version string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate build id: %w", err)
	}
	build := Build{ID: id.String(), Version: version, StartedAt: time.Now().UTC()}
	if err := b.db.Create(&build).Error; err != nil {
		return "", fmt.Errorf("failed to save build: %w", err)
	}
	b.buildID = build.ID
	return build.ID, nil
}

// HashContents is the change-detection key of a source file.
func HashContents(contents []byte) string {
	return strconv.FormatUint(xxhash.Sum64(contents), 16)
}

// HashConfig is the change-detection key of the expander options. Two
// configs that expand every source identically hash the same.
func HashConfig(config *expander.Config) (string, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to serialize config: %w", err)
	}
	return HashContents(data), nil
}

// ProcessSource expands a source file and stores the result. It reports
// whether the file was skipped because its stored expansion is current,
// that is both the source and the expander options are unchanged.
func (b *Bundler) ProcessSource(src string, contents []byte, e *expander.Expander) (bool, error) {
	hash := HashContents(contents)
	configHash, err := HashConfig(e.Config())
	if err != nil {
		return false, err
	}

	var existing Expansion
	err = b.db.Where("file_name = ?", src).Take(&existing).Error
	switch {
	case err == nil && existing.Hash == hash && existing.ConfigHash == configHash:
		b.log.Debug().Str("src", src).Str("hash", hash).Msg("unchanged, skipping")
		return true, nil
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return false, fmt.Errorf("failed to look up expansion: %w", err)
	}

	unit, err := e.Expand(src, bytes.NewReader(contents))
	if err != nil {
		return false, err
	}
	recordsJSON, err := json.Marshal(unit.Records)
	if err != nil {
		return false, fmt.Errorf("failed to serialize records: %w", err)
	}

	refs := labelRefs(src, unit)
	branches := 0
	for _, ref := range refs {
		branches += ref.Branches
	}

	err = b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&SourceFile{FileName: src, Contents: string(contents), Hash: hash}).Error; err != nil {
			return fmt.Errorf("failed to save source file: %w", err)
		}
		expansion := Expansion{
			FileName:    src,
			Hash:        hash,
			ConfigHash:  configHash,
			BuildID:     b.buildID,
			Records:     string(recordsJSON),
			LabelCount:  len(refs),
			BranchCount: branches,
		}
		if err := tx.Save(&expansion).Error; err != nil {
			return fmt.Errorf("failed to save expansion: %w", err)
		}
		// Replace the cross reference wholesale.
		if err := tx.Where("file_name = ?", src).Delete(&LabelRef{}).Error; err != nil {
			return fmt.Errorf("failed to clear label references: %w", err)
		}
		if len(refs) > 0 {
			if err := tx.Create(&refs).Error; err != nil {
				return fmt.Errorf("failed to save label references: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	b.log.Debug().Str("src", src).Str("hash", hash).Int("labels", len(refs)).Msg("stored expansion")
	return false, nil
}

// LoadUnit reads back a stored expansion.
func (b *Bundler) LoadUnit(src string) (*common.Unit, error) {
	var expansion Expansion
	if err := b.db.Where("file_name = ?", src).Take(&expansion).Error; err != nil {
		return nil, fmt.Errorf("failed to load expansion of %s: %w", src, err)
	}
	unit := &common.Unit{Src: src}
	if err := json.Unmarshal([]byte(expansion.Records), &unit.Records); err != nil {
		return nil, fmt.Errorf("failed to decode records of %s: %w", src, err)
	}
	return unit, nil
}

// LabelRefs returns the stored cross reference of a source file, ordered by label id.
func (b *Bundler) LabelRefs(src string) ([]LabelRef, error) {
	var refs []LabelRef
	err := b.db.Where("file_name = ?", src).Order("label_id").Find(&refs).Error
	return refs, err
}

// Close closes the database connection.
func (b *Bundler) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// labelRefs counts, for every label defined in the unit, the branches that target it.
func labelRefs(src string, unit *common.Unit) []LabelRef {
	index := make(map[int]int)
	var refs []LabelRef
	for _, r := range unit.Records {
		if r.Kind == common.KindLabel {
			index[r.ID] = len(refs)
			refs = append(refs, LabelRef{FileName: src, LabelName: r.Name, LabelID: r.ID, DefinedAt: r.Pos.Line})
		}
	}
	for _, r := range unit.Records {
		if r.Kind == common.KindBranch {
			if i, ok := index[r.ID]; ok {
				refs[i].Branches++
			}
		}
	}
	return refs
}
