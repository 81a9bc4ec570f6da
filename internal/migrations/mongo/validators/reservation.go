package validators

import "go.mongodb.org/mongo-driver/bson"

const (
	datePattern = `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`
	timePattern = `^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`
)

var integer = bson.A{"int", "long"}

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"guest_name",
			"guest_phone",
			"party_size",
			"reservation_date",
			"start_time",
			"status",
			"source",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"table_id": bson.M{
				"bsonType": "string",
			},

			"customer_id": bson.M{
				"bsonType": bson.A{"string", "null"},
			},

			"guest_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 255,
			},

			"guest_email": bson.M{
				"bsonType":  "string",
				"maxLength": 255,
			},

			"guest_phone": bson.M{
				"bsonType":  "string",
				"minLength": 6,
				"maxLength": 20,
			},

			"party_size": bson.M{
				"bsonType": integer,
				"minimum":  1,
				"maximum":  50,
			},

			"reservation_date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  timePattern,
			},

			"estimated_duration_minutes": bson.M{
				"bsonType": integer,
				"minimum":  1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"seated",
					"completed",
					"cancelled",
					"no_show",
				},
			},

			"source": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"special_requests": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"language": bson.M{
				"bsonType": "string",
				"enum":     []string{"en", "nl", "es", "de"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var ReservationLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "owner", "table_id", "reservation_date", "expires_at"},
		"properties": bson.M{
			"_id":              bson.M{"bsonType": "string"},
			"owner":            bson.M{"bsonType": "string"},
			"table_id":         bson.M{"bsonType": "string"},
			"reservation_date": bson.M{"bsonType": "string", "pattern": datePattern},
			"expires_at":       bson.M{"bsonType": "date"},
		},
	},
}

var ConfirmationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"reservation_id", "confirmation_type", "recipient", "sent_at"},
		"properties": bson.M{
			"reservation_id":    bson.M{"bsonType": "string"},
			"confirmation_type": bson.M{"bsonType": "string", "enum": []string{"email"}},
			"recipient":         bson.M{"bsonType": "string", "minLength": 1},
			"message_id":        bson.M{"bsonType": "string"},
			"sent_at":           bson.M{"bsonType": "date"},
		},
	},
}
