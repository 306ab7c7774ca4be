package codec

import "github.com/spoolkit/spool/errors"

// Pair is a fixed two-element tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is a fixed three-element tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple4 is a fixed four-element tuple.
type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// PairOf returns a codec for Pair: both positions in declared order, each
// through its own codec. Failure at either position aborts the whole
// tuple.
func PairOf[A, B any](a Codec[A], b Codec[B]) Codec[Pair[A, B]] {
	return pairCodec[A, B]{a: a, b: b}
}

type pairCodec[A, B any] struct {
	a Codec[A]
	b Codec[B]
}

func (c pairCodec[A, B]) Size(v Pair[A, B]) int {
	return c.a.Size(v.First) + c.b.Size(v.Second)
}

func (c pairCodec[A, B]) Encode(w *Writer, v Pair[A, B]) error {
	if err := c.a.Encode(w, v.First); err != nil {
		return errors.Prefix(err, "[0]")
	}
	if err := c.b.Encode(w, v.Second); err != nil {
		return errors.Prefix(err, "[1]")
	}
	return nil
}

func (c pairCodec[A, B]) Decode(r *Reader) (Pair[A, B], error) {
	var v Pair[A, B]
	var err error
	if v.First, err = c.a.Decode(r); err != nil {
		return Pair[A, B]{}, errors.Prefix(err, "[0]")
	}
	if v.Second, err = c.b.Decode(r); err != nil {
		return Pair[A, B]{}, errors.Prefix(err, "[1]")
	}
	return v, nil
}

// TripleOf returns a codec for Triple. See PairOf.
func TripleOf[A, B, C any](a Codec[A], b Codec[B], c Codec[C]) Codec[Triple[A, B, C]] {
	return tripleCodec[A, B, C]{a: a, b: b, c: c}
}

type tripleCodec[A, B, C any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
}

func (t tripleCodec[A, B, C]) Size(v Triple[A, B, C]) int {
	return t.a.Size(v.First) + t.b.Size(v.Second) + t.c.Size(v.Third)
}

func (t tripleCodec[A, B, C]) Encode(w *Writer, v Triple[A, B, C]) error {
	if err := t.a.Encode(w, v.First); err != nil {
		return errors.Prefix(err, "[0]")
	}
	if err := t.b.Encode(w, v.Second); err != nil {
		return errors.Prefix(err, "[1]")
	}
	if err := t.c.Encode(w, v.Third); err != nil {
		return errors.Prefix(err, "[2]")
	}
	return nil
}

func (t tripleCodec[A, B, C]) Decode(r *Reader) (Triple[A, B, C], error) {
	var v Triple[A, B, C]
	var err error
	if v.First, err = t.a.Decode(r); err != nil {
		return Triple[A, B, C]{}, errors.Prefix(err, "[0]")
	}
	if v.Second, err = t.b.Decode(r); err != nil {
		return Triple[A, B, C]{}, errors.Prefix(err, "[1]")
	}
	if v.Third, err = t.c.Decode(r); err != nil {
		return Triple[A, B, C]{}, errors.Prefix(err, "[2]")
	}
	return v, nil
}

// Tuple4Of returns a codec for Tuple4. See PairOf.
func Tuple4Of[A, B, C, D any](a Codec[A], b Codec[B], c Codec[C], d Codec[D]) Codec[Tuple4[A, B, C, D]] {
	return tuple4Codec[A, B, C, D]{a: a, b: b, c: c, d: d}
}

type tuple4Codec[A, B, C, D any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
	d Codec[D]
}

func (t tuple4Codec[A, B, C, D]) Size(v Tuple4[A, B, C, D]) int {
	return t.a.Size(v.First) + t.b.Size(v.Second) + t.c.Size(v.Third) + t.d.Size(v.Fourth)
}

func (t tuple4Codec[A, B, C, D]) Encode(w *Writer, v Tuple4[A, B, C, D]) error {
	if err := t.a.Encode(w, v.First); err != nil {
		return errors.Prefix(err, "[0]")
	}
	if err := t.b.Encode(w, v.Second); err != nil {
		return errors.Prefix(err, "[1]")
	}
	if err := t.c.Encode(w, v.Third); err != nil {
		return errors.Prefix(err, "[2]")
	}
	if err := t.d.Encode(w, v.Fourth); err != nil {
		return errors.Prefix(err, "[3]")
	}
	return nil
}

func (t tuple4Codec[A, B, C, D]) Decode(r *Reader) (Tuple4[A, B, C, D], error) {
	var v Tuple4[A, B, C, D]
	var err error
	if v.First, err = t.a.Decode(r); err != nil {
		return Tuple4[A, B, C, D]{}, errors.Prefix(err, "[0]")
	}
	if v.Second, err = t.b.Decode(r); err != nil {
		return Tuple4[A, B, C, D]{}, errors.Prefix(err, "[1]")
	}
	if v.Third, err = t.c.Decode(r); err != nil {
		return Tuple4[A, B, C, D]{}, errors.Prefix(err, "[2]")
	}
	if v.Fourth, err = t.d.Decode(r); err != nil {
		return Tuple4[A, B, C, D]{}, errors.Prefix(err, "[3]")
	}
	return v, nil
}
