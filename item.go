package conveyor

// Item is the unit of work traveling from the producer to a consumer: the key
// to compute over and the result slot the computed value belongs to. Items are
// immutable; ownership transfers through the queue, exactly one holder at a time.
type Item struct {
	Position int
	Key      int
}
