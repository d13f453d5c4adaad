package validators

import "go.mongodb.org/mongo-driver/bson"

var AdminUserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"password_hash",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"password_hash": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var ResetCodeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"code",
			"expires_at",
			"used",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"code": bson.M{
				"bsonType":  "string",
				"minLength": 6,
				"maxLength": 6,
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},

			"used": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
