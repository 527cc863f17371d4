package validators

import "go.mongodb.org/mongo-driver/bson"

var PaymentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"booking_id",
			"amount_cents",
			"method",
			"transaction_id",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"booking_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"amount_cents": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"method": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"transaction_id": bson.M{
				"bsonType": "string",
				"pattern":  "^TXN_",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Pending",
					"Success",
					"Failed",
					"Refunded",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
