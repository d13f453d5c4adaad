package validators

import "go.mongodb.org/mongo-driver/bson"

var BlockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"start_date",
			"end_date",
			"block_type",
			"blocks_fullday",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"start_date": bson.M{
				"bsonType": "date",
			},

			"end_date": bson.M{
				"bsonType": "date",
			},

			"block_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"maintenance",
					"private_event",
					"other",
				},
			},

			"reason": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"blocks_fullday": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
