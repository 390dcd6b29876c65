// Package store is the persistence layer: every read and write against the
// SQLite database goes through a Store. Bulk imports replace a whole
// generation of rows inside one transaction, so readers either see the
// previous import or the new one, never a mix.
package store

import (
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cameronehrlich/genex/db"
	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/gedcom"
	"github.com/cameronehrlich/genex/genotype"
	"github.com/cameronehrlich/genex/snpdb"
)

// Metadata keys written by imports.
const (
	MetaGenomeSource     = "genome_source"
	MetaGenomeImportedAt = "genome_imported_at"
	MetaTreeSource       = "tree_source"
	MetaTreeImportedAt   = "tree_imported_at"
	MetaSNPDBVersion     = "snpdb_version"
	MetaLastImportID     = "last_import_id"
)

const (
	insertSNPQuery = `
		INSERT OR REPLACE INTO snps (rsid, chromosome, position, genotype, source_file)
		VALUES (?, ?, ?, ?, ?)`

	selectSNPQuery = `
		SELECT rsid, chromosome, position, genotype, source_file
		FROM snps WHERE rsid = ?`

	insertAnnotationQuery = `
		INSERT OR REPLACE INTO annotations
		(rsid, gene, category, description, risk_allele, normal_allele,
		 condition, source, source_version, clinical_significance, drugs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectAnnotationQuery = `
		SELECT rsid, gene, category, description, risk_allele, normal_allele,
		       condition, source, source_version, clinical_significance, drugs
		FROM annotations`

	insertIndividualQuery = `
		INSERT INTO individuals
		(id, name, given_name, surname, sex, birth_date, birth_place,
		 death_date, death_place, family_child, raw_tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectIndividualQuery = `
		SELECT id, name, given_name, surname, sex, birth_date, birth_place,
		       death_date, death_place, family_child, raw_tags
		FROM individuals`

	insertFamilyQuery = `
		INSERT INTO families (id, husband_id, wife_id, marriage_date, marriage_place)
		VALUES (?, ?, ?, ?, ?)`

	selectFamilyQuery = `
		SELECT id, husband_id, wife_id, marriage_date, marriage_place
		FROM families`

	searchIndividualsQuery = `
		SELECT id, name, given_name, surname, sex, birth_date, birth_place,
		       death_date, death_place, family_child, raw_tags
		FROM individuals
		WHERE name LIKE ? OR surname LIKE ? OR given_name LIKE ? OR birth_place LIKE ?
		ORDER BY surname COLLATE NOCASE, given_name COLLATE NOCASE, id
		LIMIT ?`
)

// Store wraps the SQLite handle. Reads may run concurrently; bulk imports
// take the writer lock so only one generation replacement runs at a time.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger

	mu sync.Mutex // serializes bulk imports
}

// New wraps an already-open database handle.
func New(sqlDB *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: sqlDB, logger: logger}
}

// Open opens the database at path, applies migrations and returns a Store.
func Open(path string, logger *zap.SugaredLogger) (*Store, error) {
	sqlDB, err := db.OpenWithMigrations(path, logger)
	if err != nil {
		return nil, err
	}
	return New(sqlDB, logger), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for status queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ImportGenome replaces the stored genome with calls in one transaction.
// Duplicate rsids resolve to the last occurrence. On any failure the
// previous genome is left untouched.
func (s *Store) ImportGenome(calls []genotype.Call, sourceFile string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin genome import")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snps"); err != nil {
		return 0, errors.Wrap(err, "failed to clear prior genome")
	}

	stmt, err := tx.Prepare(insertSNPQuery)
	if err != nil {
		return 0, errors.Wrap(err, "failed to prepare snp insert")
	}
	defer stmt.Close()

	for _, c := range calls {
		if _, err := stmt.Exec(c.RSID, c.Chromosome, c.Position, c.Genotype, c.SourceFile); err != nil {
			return 0, errors.Wrapf(err, "failed to insert snp %s", c.RSID)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := setMetadataTx(tx, MetaGenomeSource, sourceFile); err != nil {
		return 0, err
	}
	if err := setMetadataTx(tx, MetaGenomeImportedAt, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit genome import")
	}

	if s.logger != nil {
		s.logger.Infow("Genome imported", "snps", len(calls), "source", sourceFile)
	}
	return len(calls), nil
}

// LoadAnnotations replaces the annotation table with the given set.
func (s *Store) LoadAnnotations(anns []snpdb.Annotation) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin annotation load")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM annotations"); err != nil {
		return 0, errors.Wrap(err, "failed to clear prior annotations")
	}

	stmt, err := tx.Prepare(insertAnnotationQuery)
	if err != nil {
		return 0, errors.Wrap(err, "failed to prepare annotation insert")
	}
	defer stmt.Close()

	for _, a := range anns {
		_, err := stmt.Exec(a.RSID, a.Gene, a.Category, a.Description,
			a.RiskAllele, a.NormalAllele, a.Condition,
			a.Source, a.SourceVersion, a.ClinicalSignificance, a.Drugs)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to insert annotation %s", a.RSID)
		}
	}

	if err := setMetadataTx(tx, MetaSNPDBVersion, snpdb.Version); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit annotation load")
	}
	return len(anns), nil
}

// ImportTree replaces all family tree records in one transaction and
// returns the individual and family counts. Records are inserted in id
// order so re-imports of the same file produce identical tables.
func (s *Store) ImportTree(result *gedcom.Result, sourceFile string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to begin tree import")
	}
	defer tx.Rollback()

	for _, table := range []string{"individual_spouse_families", "family_children", "families", "individuals"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, 0, errors.Wrapf(err, "failed to clear %s", table)
		}
	}

	indStmt, err := tx.Prepare(insertIndividualQuery)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to prepare individual insert")
	}
	defer indStmt.Close()

	for _, id := range sortedIndividualIDs(result) {
		ind := result.Individuals[id]
		rawTags, err := json.Marshal(ind.RawTags)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "failed to encode raw tags for %s", id)
		}
		_, err = indStmt.Exec(ind.ID, ind.Name, ind.GivenName, ind.Surname, string(ind.Sex),
			ind.BirthDate, ind.BirthPlace, ind.DeathDate, ind.DeathPlace,
			ind.FamilyChild, string(rawTags))
		if err != nil {
			return 0, 0, errors.Wrapf(err, "failed to insert individual %s", id)
		}
		for _, famID := range ind.SpouseFamilies {
			_, err := tx.Exec(
				"INSERT OR IGNORE INTO individual_spouse_families (individual_id, family_id) VALUES (?, ?)",
				ind.ID, famID)
			if err != nil {
				return 0, 0, errors.Wrapf(err, "failed to insert spouse family for %s", id)
			}
		}
	}

	famStmt, err := tx.Prepare(insertFamilyQuery)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to prepare family insert")
	}
	defer famStmt.Close()

	for _, id := range sortedFamilyIDs(result) {
		fam := result.Families[id]
		_, err := famStmt.Exec(fam.ID, fam.HusbandID, fam.WifeID, fam.MarriageDate, fam.MarriagePlace)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "failed to insert family %s", id)
		}
		for seq, childID := range fam.Children {
			_, err := tx.Exec(
				"INSERT OR IGNORE INTO family_children (family_id, child_id, seq) VALUES (?, ?, ?)",
				fam.ID, childID, seq)
			if err != nil {
				return 0, 0, errors.Wrapf(err, "failed to insert child link for %s", id)
			}
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := setMetadataTx(tx, MetaTreeSource, sourceFile); err != nil {
		return 0, 0, err
	}
	if err := setMetadataTx(tx, MetaTreeImportedAt, now); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, errors.Wrap(err, "failed to commit tree import")
	}

	if s.logger != nil {
		s.logger.Infow("Family tree imported",
			"individuals", len(result.Individuals),
			"families", len(result.Families),
			"source", sourceFile,
		)
	}
	return len(result.Individuals), len(result.Families), nil
}

// GetCall looks up a single genotype call by rsid.
func (s *Store) GetCall(rsid string) (*genotype.Call, error) {
	var c genotype.Call
	err := s.db.QueryRow(selectSNPQuery, rsid).
		Scan(&c.RSID, &c.Chromosome, &c.Position, &c.Genotype, &c.SourceFile)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("snp %s", rsid)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query snp %s", rsid)
	}
	return &c, nil
}

// GetCallsByRSIDs returns the subset of rsids present in the genome.
func (s *Store) GetCallsByRSIDs(rsids []string) (map[string]genotype.Call, error) {
	calls := make(map[string]genotype.Call, len(rsids))
	for _, rsid := range rsids {
		c, err := s.GetCall(rsid)
		if err != nil {
			if errors.IsNotFoundError(err) {
				continue
			}
			return nil, err
		}
		calls[rsid] = *c
	}
	return calls, nil
}

// GetAnnotation looks up curated metadata by rsid.
func (s *Store) GetAnnotation(rsid string) (*snpdb.Annotation, error) {
	row := s.db.QueryRow(selectAnnotationQuery+" WHERE rsid = ?", rsid)
	a, err := scanAnnotation(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("annotation %s", rsid)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query annotation %s", rsid)
	}
	return a, nil
}

// GetAnnotationsByCategory returns the curated set for one category,
// ordered by gene then rsid.
func (s *Store) GetAnnotationsByCategory(category string) ([]snpdb.Annotation, error) {
	rows, err := s.db.Query(selectAnnotationQuery+" WHERE category = ? ORDER BY gene, rsid", category)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s annotations", category)
	}
	defer rows.Close()

	var anns []snpdb.Annotation
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan annotation")
		}
		anns = append(anns, *a)
	}
	return anns, rows.Err()
}

// GetIndividual looks up one individual by record id.
func (s *Store) GetIndividual(id string) (*gedcom.Individual, error) {
	row := s.db.QueryRow(selectIndividualQuery+" WHERE id = ?", id)
	ind, err := scanIndividual(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("individual %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query individual %s", id)
	}
	if err := s.attachSpouseFamilies(ind); err != nil {
		return nil, err
	}
	return ind, nil
}

// SearchIndividuals does a case-insensitive substring match over name,
// surname, given name and birth place, ordered by surname, given name, id.
func (s *Store) SearchIndividuals(query string, limit int) ([]gedcom.Individual, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.TrimSpace(query) + "%"
	rows, err := s.db.Query(searchIndividualsQuery, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search individuals for %q", query)
	}
	defer rows.Close()

	return collectIndividuals(rows)
}

// AllIndividuals returns every individual with spouse family links attached.
func (s *Store) AllIndividuals() ([]gedcom.Individual, error) {
	rows, err := s.db.Query(selectIndividualQuery + " ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "failed to query individuals")
	}
	defer rows.Close()

	inds, err := collectIndividuals(rows)
	if err != nil {
		return nil, err
	}
	for i := range inds {
		if err := s.attachSpouseFamilies(&inds[i]); err != nil {
			return nil, err
		}
	}
	return inds, nil
}

// AllFamilies returns every family with children in original CHIL order.
func (s *Store) AllFamilies() ([]gedcom.Family, error) {
	rows, err := s.db.Query(selectFamilyQuery + " ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "failed to query families")
	}
	defer rows.Close()

	var fams []gedcom.Family
	for rows.Next() {
		var f gedcom.Family
		var husband, wife, mDate, mPlace sql.NullString
		if err := rows.Scan(&f.ID, &husband, &wife, &mDate, &mPlace); err != nil {
			return nil, errors.Wrap(err, "failed to scan family")
		}
		f.HusbandID = husband.String
		f.WifeID = wife.String
		f.MarriageDate = mDate.String
		f.MarriagePlace = mPlace.String
		fams = append(fams, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read families")
	}

	for i := range fams {
		children, err := s.familyChildren(fams[i].ID)
		if err != nil {
			return nil, err
		}
		fams[i].Children = children
	}
	return fams, nil
}

func (s *Store) familyChildren(familyID string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT child_id FROM family_children WHERE family_id = ? ORDER BY seq", familyID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query children of %s", familyID)
	}
	defer rows.Close()

	var children []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan child link")
		}
		children = append(children, id)
	}
	return children, rows.Err()
}

func (s *Store) attachSpouseFamilies(ind *gedcom.Individual) error {
	rows, err := s.db.Query(
		"SELECT family_id FROM individual_spouse_families WHERE individual_id = ? ORDER BY family_id",
		ind.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to query spouse families of %s", ind.ID)
	}
	defer rows.Close()

	for rows.Next() {
		var famID string
		if err := rows.Scan(&famID); err != nil {
			return errors.Wrap(err, "failed to scan spouse family link")
		}
		ind.SpouseFamilies = append(ind.SpouseFamilies, famID)
	}
	return rows.Err()
}

// CountSNPs returns the number of stored genotype calls.
func (s *Store) CountSNPs() (int, error) {
	return s.countTable("snps")
}

// CountAnnotations returns the number of loaded annotations.
func (s *Store) CountAnnotations() (int, error) {
	return s.countTable("annotations")
}

// CountIndividuals returns the number of stored individuals.
func (s *Store) CountIndividuals() (int, error) {
	return s.countTable("individuals")
}

// CountFamilies returns the number of stored families.
func (s *Store) CountFamilies() (int, error) {
	return s.countTable("families")
}

func (s *Store) countTable(table string) (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "failed to count %s", table)
	}
	return count, nil
}

// SetMetadata upserts one metadata key.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return errors.Wrapf(err, "failed to set metadata %s", key)
	}
	return nil
}

// GetMetadata returns one metadata value, or a not-found error.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFoundError("metadata key %s", key)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to get metadata %s", key)
	}
	return value, nil
}

// AllMetadata returns every metadata key/value pair.
func (s *Store) AllMetadata() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM metadata ORDER BY key")
	if err != nil {
		return nil, errors.Wrap(err, "failed to query metadata")
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.Wrap(err, "failed to scan metadata")
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

func setMetadataTx(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec("INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return errors.Wrapf(err, "failed to set metadata %s", key)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnotation(row rowScanner) (*snpdb.Annotation, error) {
	var a snpdb.Annotation
	var risk, normal, condition, clinSig, drugs sql.NullString
	err := row.Scan(&a.RSID, &a.Gene, &a.Category, &a.Description,
		&risk, &normal, &condition, &a.Source, &a.SourceVersion, &clinSig, &drugs)
	if err != nil {
		return nil, err
	}
	a.RiskAllele = risk.String
	a.NormalAllele = normal.String
	a.Condition = condition.String
	a.ClinicalSignificance = clinSig.String
	a.Drugs = drugs.String
	return &a, nil
}

func scanIndividual(row rowScanner) (*gedcom.Individual, error) {
	var ind gedcom.Individual
	var sex, rawTags string
	var bDate, bPlace, dDate, dPlace, famChild sql.NullString
	err := row.Scan(&ind.ID, &ind.Name, &ind.GivenName, &ind.Surname, &sex,
		&bDate, &bPlace, &dDate, &dPlace, &famChild, &rawTags)
	if err != nil {
		return nil, err
	}
	ind.Sex = gedcom.Sex(sex)
	ind.BirthDate = bDate.String
	ind.BirthPlace = bPlace.String
	ind.DeathDate = dDate.String
	ind.DeathPlace = dPlace.String
	ind.FamilyChild = famChild.String
	if rawTags != "" && rawTags != "{}" {
		if err := json.Unmarshal([]byte(rawTags), &ind.RawTags); err != nil {
			return nil, errors.Wrapf(err, "corrupt raw tags for %s", ind.ID)
		}
	}
	return &ind, nil
}

func collectIndividuals(rows *sql.Rows) ([]gedcom.Individual, error) {
	var inds []gedcom.Individual
	for rows.Next() {
		ind, err := scanIndividual(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan individual")
		}
		inds = append(inds, *ind)
	}
	return inds, rows.Err()
}

func sortedIndividualIDs(result *gedcom.Result) []string {
	ids := make([]string, 0, len(result.Individuals))
	for id := range result.Individuals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedFamilyIDs(result *gedcom.Result) []string {
	ids := make([]string, 0, len(result.Families))
	for id := range result.Families {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
