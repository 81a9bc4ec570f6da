// Package seed loads the default restaurant floor plan and booking policy.
package seed

import (
	"context"
	"fmt"

	mongotx "tablebooker/pkg/db/mongo"
	"tablebooker/pkg/logger"
	"tablebooker/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ids are derived from names so running seed twice updates in place.
var namespace = uuid.MustParse("6f1c3a52-8d0e-4c1b-9a57-2e4d6b9f0c11")

func stableID(kind, name string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+name)).String()
}

type service struct {
	name       string
	start, end string
}

type tableDef struct {
	number   int
	capacity int
	section  string
}

var (
	services = []service{
		{name: "Lunch", start: "12:00:00", end: "16:00:00"},
		{name: "Dinner", start: "18:00:00", end: "22:00:00"},
	}

	sections = []string{"Front", "Center", "Patio", "VIP"}

	tables = []tableDef{
		{number: 1, capacity: 2, section: "Front"},
		{number: 2, capacity: 2, section: "Front"},
		{number: 3, capacity: 4, section: "Center"},
		{number: 4, capacity: 4, section: "Center"},
		{number: 5, capacity: 6, section: "Patio"},
		{number: 6, capacity: 6, section: "Patio"},
		{number: 7, capacity: 8, section: "VIP"},
	}
)

type Data struct {
	Settings  model.ReservationSettings
	TimeSlots []model.TimeSlot
	Sections  []model.FloorSection
	Tables    []model.Table
}

func DefaultData() Data {
	allow := true
	maxParty := 12
	minHours := 2.0
	maxDays := 60.0

	data := Data{
		Settings: model.ReservationSettings{
			ID:                     model.ReservationSettingsID,
			AllowOnlineBooking:     &allow,
			MaxPartySize:           &maxParty,
			MinAdvanceBookingHours: &minHours,
			MaxAdvanceBookingDays:  &maxDays,
		},
	}

	for day := 0; day < 7; day++ {
		for _, s := range services {
			data.TimeSlots = append(data.TimeSlots, model.TimeSlot{
				ID:        stableID("slot", fmt.Sprintf("%d-%s", day, s.name)),
				DayOfWeek: day,
				Name:      s.name,
				StartTime: s.start,
				EndTime:   s.end,
				IsActive:  true,
			})
		}
	}

	for i, name := range sections {
		data.Sections = append(data.Sections, model.FloorSection{
			ID:        stableID("section", name),
			Name:      name,
			SortOrder: i + 1,
			IsActive:  true,
		})
	}

	for _, t := range tables {
		data.Tables = append(data.Tables, model.Table{
			ID:          stableID("table", fmt.Sprint(t.number)),
			TableNumber: t.number,
			SectionID:   stableID("section", t.section),
			Capacity:    t.capacity,
			IsActive:    true,
		})
	}

	return data
}

// Run upserts data into db.
func Run(ctx context.Context, db *mongo.Database, data Data, log *logger.Logger) error {
	if err := upsert(ctx, db.Collection(mongotx.CollectionReservationSettings), data.Settings.ID, data.Settings); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	log.Info("Seeded reservation settings")

	for _, slot := range data.TimeSlots {
		if err := upsert(ctx, db.Collection(mongotx.CollectionReservationTimeSlots), slot.ID, slot); err != nil {
			return fmt.Errorf("seed time slot %s: %w", slot.ID, err)
		}
	}
	log.Info("Seeded time slots", "count", len(data.TimeSlots))

	for _, section := range data.Sections {
		if err := upsert(ctx, db.Collection(mongotx.CollectionFloorSections), section.ID, section); err != nil {
			return fmt.Errorf("seed section %s: %w", section.Name, err)
		}
	}
	log.Info("Seeded floor sections", "count", len(data.Sections))

	for _, table := range data.Tables {
		if err := upsert(ctx, db.Collection(mongotx.CollectionTables), table.ID, table); err != nil {
			return fmt.Errorf("seed table %d: %w", table.TableNumber, err)
		}
	}
	log.Info("Seeded tables", "count", len(data.Tables))

	return nil
}

func upsert(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}
