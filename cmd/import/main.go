// Command import performs the one-time migration of the legacy desktop
// database into the record store. It reads one CSV file per legacy table
// (as produced by `mdb-export church1_be.mdb <table> > <table>.csv`) and
// writes documents in the exact shapes the API serves, keeping the legacy
// numeric keys as original_id.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/KIFUA/Church-Buses/config"
	"github.com/KIFUA/Church-Buses/internal/store"
	"github.com/KIFUA/Church-Buses/models"
)

var collections = []string{
	store.Members, store.Families, store.Children, store.Services,
	store.ServiceTypes, store.Districts, store.Presbyters, store.Deacons,
	store.ReferenceData, store.ChurchInfo,
}

// Legacy reference tables mapped to their reference_data type.
var refTables = map[string]string{
	"s_simeyniy":  models.RefMaritalStatus,
	"s_socialniy": models.RefSocialStatus,
	"s_osvita":    models.RefEducation,
	"s_profesiya": models.RefProfession,
	"s_vibuv":     models.RefDepartureReason,
}

func main() {
	dir := flag.String("dir", ".", "directory with the exported CSV tables")
	flag.Parse()

	cfg := config.Load()
	client, db, err := config.ConnectMongo(cfg)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := run(context.Background(), db, *dir); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db *mongo.Database, dir string) error {
	for _, coll := range collections {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("clear %s: %w", coll, err)
		}
	}

	refs, err := importReferenceData(ctx, db, dir)
	if err != nil {
		return err
	}
	if err := importChurchInfo(ctx, db, dir); err != nil {
		return err
	}
	memberCount, err := importMembers(ctx, db, dir, refs)
	if err != nil {
		return err
	}
	if err := importServiceTypes(ctx, db, dir); err != nil {
		return err
	}
	if err := importServices(ctx, db, dir); err != nil {
		return err
	}
	if err := importFamilies(ctx, db, dir); err != nil {
		return err
	}
	if err := importChildren(ctx, db, dir); err != nil {
		return err
	}
	if err := importDistricts(ctx, db, dir); err != nil {
		return err
	}
	if err := importLeadership(ctx, db, dir); err != nil {
		return err
	}
	if err := createIndexes(ctx, db); err != nil {
		return err
	}

	active, err := db.Collection(store.Members).CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return err
	}
	slog.Info("migration complete", "members", memberCount, "active", active)
	return nil
}

func importReferenceData(ctx context.Context, db *mongo.Database, dir string) (map[string]map[string]string, error) {
	refs := make(map[string]map[string]string)
	for table, refType := range refTables {
		rows, err := readTable(dir, table)
		if err != nil {
			return nil, err
		}
		data := make(map[string]string)
		for _, row := range rows {
			if row["id"] != "" && row["ukr"] != "" {
				data[row["id"]] = strings.TrimSpace(row["ukr"])
			}
		}
		refs[refType] = data
		doc := models.ReferenceTable{Type: refType, Data: data}
		if _, err := db.Collection(store.ReferenceData).InsertOne(ctx, doc); err != nil {
			return nil, err
		}
		slog.Info("imported reference table", "type", refType, "entries", len(data))
	}
	return refs, nil
}

func importChurchInfo(ctx context.Context, db *mongo.Database, dir string) error {
	rows, err := readTable(dir, "parametri")
	if err != nil || len(rows) == 0 {
		return err
	}
	p := rows[0]
	info := models.ChurchInfo{
		Name:     strings.TrimSpace(p["povna_nazva"]),
		City:     strings.TrimSpace(p["misto"]),
		Phone:    strings.TrimSpace(p["tel_ofis"]),
		Language: strings.TrimSpace(p["mova"]),
	}
	if info.Name == "" {
		info.Name = models.DefaultChurchInfo().Name
	}
	_, err = db.Collection(store.ChurchInfo).InsertOne(ctx, info)
	return err
}

func importMembers(ctx context.Context, db *mongo.Database, dir string, refs map[string]map[string]string) (int, error) {
	rows, err := readTable(dir, "anketa")
	if err != nil {
		return 0, err
	}
	count := 0
	for _, m := range rows {
		id := atoi(m["id"])
		if id == 0 {
			continue
		}
		departureReasonID := m["id_vibuttya"]
		member := models.Member{
			OriginalID:        id,
			PIB:               strings.TrimSpace(m["pib"]),
			Gender:            genderFromLabel(m["stat"]),
			GenderUkr:         strings.TrimSpace(m["stat"]),
			BirthDate:         parseLegacyDate(m["d_narodjennya"]),
			PhoneHome:         strings.TrimSpace(m["tel_dom"]),
			PhoneMobile:       strings.TrimSpace(m["tel_mob"]),
			Email:             strings.TrimSpace(m["email"]),
			Skype:             strings.TrimSpace(m["skype"]),
			RepentanceDate:    parseLegacyDate(m["d_pokayannya"]),
			BaptismDate:       parseLegacyDate(m["d_vodnogo"]),
			HolySpirit:        m["hsd"] == "1",
			JoinDate:          parseLegacyDate(m["d_vstupu"]),
			MaritalStatusID:   m["id_simeyniy"],
			SocialStatusID:    m["id_socialniy"],
			EducationID:       m["id_osvita"],
			EducationPlace:    strings.TrimSpace(m["zaklad_osv"]),
			ProfessionID:      m["id_profesiya"],
			HasCar:            m["avto"] == "1",
			CarModel:          strings.TrimSpace(m["avto_marka"]),
			DepartureReasonID: departureReasonID,
			DepartureDate:     parseLegacyDate(m["d_vibuttya"]),
			IsSick:            m["hvoriy"] == "1",
			OtherChurch:       strings.TrimSpace(m["insha_gromada"]),
			Notes:             strings.TrimSpace(m["primitka"]),
			IsActive:          departureReasonID == "0" || departureReasonID == "",
			PhotoPath:         strings.TrimSpace(m["foto_fn"]),
		}
		member.MaritalStatus = refs[models.RefMaritalStatus][member.MaritalStatusID]
		member.SocialStatus = refs[models.RefSocialStatus][member.SocialStatusID]
		member.Education = refs[models.RefEducation][member.EducationID]
		member.Profession = refs[models.RefProfession][member.ProfessionID]
		member.DepartureReason = refs[models.RefDepartureReason][departureReasonID]

		if _, err := db.Collection(store.Members).InsertOne(ctx, member); err != nil {
			return count, err
		}
		count++
	}
	slog.Info("imported members", "count", count)
	return count, nil
}

func importServiceTypes(ctx context.Context, db *mongo.Database, dir string) error {
	rows, err := readTable(dir, "s_slujinnya")
	if err != nil {
		return err
	}
	for _, st := range rows {
		doc := models.ServiceType{
			OriginalID: atoi(st["id"]),
			NameUkr:    strings.TrimSpace(st["ukr"]),
			NameRus:    strings.TrimSpace(st["rus"]),
		}
		if _, err := db.Collection(store.ServiceTypes).InsertOne(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func importServices(ctx context.Context, db *mongo.Database, dir string) error {
	rows, err := readTable(dir, "slujinnya")
	if err != nil {
		return err
	}
	for _, s := range rows {
		doc := models.Service{
			OriginalID:       atoi(s["id"]),
			MemberOriginalID: atoi(s["id_anketa"]),
			ServiceTypeID:    atoi(s["id_slujinnya"]),
			StartDate:        parseLegacyDate(s["d_begin"]),
			EndDate:          parseLegacyDate(s["d_end"]),
		}
		if _, err := db.Collection(store.Services).InsertOne(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func importFamilies(ctx context.Context, db *mongo.Database, dir string) error {
	rows, err := readTable(dir, "simya")
	if err != nil {
		return err
	}
	for _, f := range rows {
		doc := models.Family{
			OriginalID:   atoi(f["id"]),
			HusbandID:    optionalID(f["id_cholovik"]),
			WifeID:       optionalID(f["id_drujina"]),
			MarriageDate: parseLegacyDate(f["d_begin"]),
			EndDate:      parseLegacyDate(f["d_end"]),
		}
		if _, err := db.Collection(store.Families).InsertOne(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func importChildren(ctx context.Context, db *mongo.Database, dir string) error {
	rows, err := readTable(dir, "diti")
	if err != nil {
		return err
	}
	for _, c := range rows {
		familyID := atoi(c["id_simya"])
		if familyID == 0 {
			continue
		}
		doc := models.Child{
			OriginalID: atoi(c["id"]),
			FamilyID:   familyID,
			Name:       strings.TrimSpace(c["n_diti"]),
			Surname:    strings.TrimSpace(c["f_diti"]),
			BirthDate:  parseLegacyDate(c["d_nar"]),
		}
		if _, err := db.Collection(store.Children).InsertOne(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func importDistricts(ctx context.Context, db *mongo.Database, dir string) error {
	rows, err := readTable(dir, "dilnicya")
	if err != nil {
		return err
	}
	for _, d := range rows {
		doc := models.District{
			OriginalID: atoi(d["id"]),
			Number:     atoi(d["n_dilnici"]),
			LeaderID:   atoi(d["id_anketa"]),
			Area:       strings.TrimSpace(d["primitka"]),
			RegionID:   atoi(d["id_rayon2"]),
		}
		if _, err := db.Collection(store.Districts).InsertOne(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func importLeadership(ctx context.Context, db *mongo.Database, dir string) error {
	presbyters, err := readTable(dir, "presviter")
	if err != nil {
		return err
	}
	for _, p := range presbyters {
		doc := models.Presbyter{OriginalID: atoi(p["id"]), MemberID: atoi(p["id_anketa"])}
		if _, err := db.Collection(store.Presbyters).InsertOne(ctx, doc); err != nil {
			return err
		}
	}

	deacons, err := readTable(dir, "diyakon")
	if err != nil {
		return err
	}
	for _, d := range deacons {
		doc := models.Deacon{
			OriginalID:  atoi(d["id"]),
			MemberID:    atoi(d["id_anketa"]),
			PresbyterID: optionalID(d["id_presviter"]),
		}
		if _, err := db.Collection(store.Deacons).InsertOne(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func createIndexes(ctx context.Context, db *mongo.Database) error {
	memberIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "original_id", Value: 1}}},
		{Keys: bson.D{{Key: "pib", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}
	if _, err := db.Collection(store.Members).Indexes().CreateMany(ctx, memberIndexes); err != nil {
		return err
	}
	if _, err := db.Collection(store.Services).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "member_original_id", Value: 1}},
	}); err != nil {
		return err
	}
	familyIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "husband_id", Value: 1}}},
		{Keys: bson.D{{Key: "wife_id", Value: 1}}},
	}
	_, err := db.Collection(store.Families).Indexes().CreateMany(ctx, familyIndexes)
	return err
}

// readTable reads <dir>/<table>.csv into a list of header-keyed rows. A
// missing file is treated as an empty table so partial exports import fine.
func readTable(dir, table string) ([]map[string]string, error) {
	f, err := os.Open(filepath.Join(dir, table+".csv"))
	if os.IsNotExist(err) {
		slog.Warn("table export missing, skipping", "table", table)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, field := range record {
			if i < len(header) {
				row[header[i]] = field
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var legacyDateLayouts = []string{"01/02/06 15:04:05", "2006-01-02 15:04:05"}

// parseLegacyDate converts the MDB export date formats into an ISO string.
// Anything unparseable becomes nil, same as the legacy migration did.
func parseLegacyDate(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range legacyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format("2006-01-02T15:04:05")
			return &iso
		}
	}
	return nil
}

func genderFromLabel(stat string) string {
	if strings.TrimSpace(stat) == "брат" {
		return "male"
	}
	return "female"
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func optionalID(s string) *int {
	n := atoi(s)
	if n == 0 {
		return nil
	}
	return &n
}
