package validators

import "go.mongodb.org/mongo-driver/bson"

var SettingsValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"allow_online_booking",
			"max_party_size",
			"min_advance_booking_hours",
			"max_advance_booking_days",
		},
		"properties": bson.M{
			"allow_online_booking":      bson.M{"bsonType": "bool"},
			"max_party_size":            bson.M{"bsonType": integer, "minimum": 1},
			"min_advance_booking_hours": bson.M{"bsonType": "number", "minimum": 0},
			"max_advance_booking_days":  bson.M{"bsonType": "number", "minimum": 0},
		},
	},
}

var TimeSlotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"day_of_week", "start_time", "end_time", "is_active"},
		"properties": bson.M{
			"day_of_week": bson.M{"bsonType": integer, "minimum": 0, "maximum": 6},
			"name":        bson.M{"bsonType": "string"},
			"start_time":  bson.M{"bsonType": "string", "pattern": timePattern},
			"end_time":    bson.M{"bsonType": "string", "pattern": timePattern},
			"is_active":   bson.M{"bsonType": "bool"},
		},
	},
}

var SectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"name", "is_active"},
		"properties": bson.M{
			"name":       bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"sort_order": bson.M{"bsonType": integer},
			"is_active":  bson.M{"bsonType": "bool"},
		},
	},
}

var TableValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"table_number", "capacity", "is_active"},
		"properties": bson.M{
			"table_number": bson.M{"bsonType": integer, "minimum": 1},
			"section_id":   bson.M{"bsonType": "string"},
			"capacity":     bson.M{"bsonType": integer, "minimum": 1, "maximum": 50},
			"is_active":    bson.M{"bsonType": "bool"},
		},
	},
}

var CustomerValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"name", "created_at"},
		"properties": bson.M{
			"name":       bson.M{"bsonType": "string", "minLength": 1, "maxLength": 255},
			"email":      bson.M{"bsonType": "string", "maxLength": 255},
			"phone":      bson.M{"bsonType": "string", "maxLength": 20},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
