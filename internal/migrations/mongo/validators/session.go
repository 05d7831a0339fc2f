package validators

import "go.mongodb.org/mongo-driver/bson"

var SessionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "token", "updated_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":   bson.M{"bsonType": "string", "minLength": 1},
			"token": bson.M{"bsonType": "string"},
			"user": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"id": bson.M{"bsonType": "string"},
				},
			},
			"companies": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "object"},
			},
			"selected_company": bson.M{"bsonType": "object"},
			"role": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  2,
			},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
