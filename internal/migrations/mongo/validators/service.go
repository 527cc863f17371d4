package validators

import "go.mongodb.org/mongo-driver/bson"

var ServiceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"provider_id",
			"name",
			"price_cents",
			"duration_minutes",
			"active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"provider_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"category": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"price_cents": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"duration_minutes": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  1440,
			},

			"active": bson.M{
				"bsonType": "bool",
			},
		},
	},
}

var AvailabilityWindowValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"provider_id",
			"weekday",
			"start_minute",
			"end_minute",
			"active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"provider_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"weekday": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  6,
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

			"active": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
