package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"provider_id",
			"service_id",
			"date",
			"start_minute",
			"end_minute",
			"address",
			"amount_cents",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"provider_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"service_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"start_minute": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  1439,
			},

			"end_minute": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  1440,
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 500,
			},

			"special_instructions": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"amount_cents": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Pending",
					"Confirmed",
					"InProgress",
					"Completed",
					"Cancelled",
					"Rejected",
					"PaymentFailed",
					"Refunded",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
