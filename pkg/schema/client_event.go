package schema

import "time"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields" : [
		{"name": "event_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "quantity", "type": "int"},
		{"name": "query", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "order_id", "type": "long"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ClientEventV1 struct {
	EventID    string    `avro:"event_id"`
	Kind       string    `avro:"kind"`
	ProductID  int64     `avro:"product_id"`
	Quantity   int       `avro:"quantity"`
	Query      string    `avro:"query"`
	Category   string    `avro:"category"`
	OrderID    int64     `avro:"order_id"`
	OccurredAt time.Time `avro:"occurred_at"`
}
