// SPDX-License-Identifier: GPL-2.0-or-later

package trace

import (
	"io"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"quakemove/math/vec"
)

// Wire layout, all messages in protobuf encoding:
//
//	Log      { 1 session bytes; 2 repeated Frame }
//	Frame    { 1 tick; 2 dt; 3 move Vec3; 4 jump; 5 state Snapshot; 6 repeated Change; 7 repeated Record }
//	Snapshot { 1 origin Vec3; 2 velocity Vec3; 3 onground; 4 fly; 5 noclip; 6 jumped }
//	Change   { 1 field; 2 from; 3 to }
//	Record   { 1 tag; 2 origin Vec3; 3 vector Vec3; 4 hit; 5 fraction; 6 normal Vec3; 7 v0; 8 v1; 9 v2 }
//	Vec3     { 1 x; 2 y; 3 z }

func appendVec(b []byte, num protowire.Number, v vec.Vec3) []byte {
	var m []byte
	for i, c := range v {
		m = protowire.AppendTag(m, protowire.Number(i+1), protowire.Fixed64Type)
		m = protowire.AppendFixed64(m, math.Float64bits(c))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendFloat(b []byte, num protowire.Number, f float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(f))
}

func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

func marshalRecord(r Record) []byte {
	var b []byte
	b = appendString(b, 1, r.Tag)
	b = appendVec(b, 2, r.Ray.Origin)
	b = appendVec(b, 3, r.Ray.Vector)
	b = appendBool(b, 4, r.Hit)
	if r.Hit {
		b = appendFloat(b, 5, r.Result.Fraction)
		b = appendVec(b, 6, r.Result.Normal)
		b = appendVec(b, 7, r.Result.Triangle.V0)
		b = appendVec(b, 8, r.Result.Triangle.V1)
		b = appendVec(b, 9, r.Result.Triangle.V2)
	}
	return b
}

func marshalFrame(f Frame) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, f.Tick)
	b = appendFloat(b, 2, f.Dt)
	b = appendVec(b, 3, f.Move)
	b = appendBool(b, 4, f.Jump)

	var s []byte
	s = appendVec(s, 1, f.State.Origin)
	s = appendVec(s, 2, f.State.Velocity)
	s = appendBool(s, 3, f.State.OnGround)
	s = appendBool(s, 4, f.State.Fly)
	s = appendBool(s, 5, f.State.NoClip)
	s = appendBool(s, 6, f.State.Jumped)
	b = appendMessage(b, 5, s)

	for _, c := range f.Changes {
		var m []byte
		m = appendString(m, 1, c.Field)
		m = appendString(m, 2, c.From)
		m = appendString(m, 3, c.To)
		b = appendMessage(b, 6, m)
	}
	for _, r := range f.Traces {
		b = appendMessage(b, 7, marshalRecord(r))
	}
	return b
}

// Marshal encodes frames in the given order.
func Marshal(session uuid.UUID, frames []Frame) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, session[:])
	for _, f := range frames {
		b = appendMessage(b, 2, marshalFrame(f))
	}
	return b
}

// WriteTo writes the recorded ticks, oldest first.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	logs := r.Logs()
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	n, err := w.Write(Marshal(r.session, logs))
	return int64(n), errors.Wrap(err, "trace: write log")
}

type field struct {
	num protowire.Number
	typ protowire.Type
	val []byte // raw value for bytes fields
	u   uint64 // varint and fixed64 fields
}

func fields(b []byte) ([]field, error) {
	var out []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "trace: tag")
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.u, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.u, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.val, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, errors.Wrapf(protowire.ParseError(n), "trace: field %d", num)
		}
		b = b[n:]
		out = append(out, f)
	}
	return out, nil
}

func decodeVec(b []byte) (vec.Vec3, error) {
	var v vec.Vec3
	fs, err := fields(b)
	if err != nil {
		return v, err
	}
	for _, f := range fs {
		if f.typ == protowire.Fixed64Type && f.num >= 1 && f.num <= 3 {
			v[f.num-1] = math.Float64frombits(f.u)
		}
	}
	return v, nil
}

func decodeRecord(b []byte) (Record, error) {
	var r Record
	fs, err := fields(b)
	if err != nil {
		return r, err
	}
	for _, f := range fs {
		var err error
		switch f.num {
		case 1:
			r.Tag = string(f.val)
		case 2:
			r.Ray.Origin, err = decodeVec(f.val)
		case 3:
			r.Ray.Vector, err = decodeVec(f.val)
		case 4:
			r.Hit = protowire.DecodeBool(f.u)
		case 5:
			r.Result.Fraction = math.Float64frombits(f.u)
		case 6:
			r.Result.Normal, err = decodeVec(f.val)
		case 7:
			r.Result.Triangle.V0, err = decodeVec(f.val)
		case 8:
			r.Result.Triangle.V1, err = decodeVec(f.val)
		case 9:
			r.Result.Triangle.V2, err = decodeVec(f.val)
		}
		if err != nil {
			return r, err
		}
	}
	return r, nil
}

func decodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	fs, err := fields(b)
	if err != nil {
		return s, err
	}
	for _, f := range fs {
		var err error
		switch f.num {
		case 1:
			s.Origin, err = decodeVec(f.val)
		case 2:
			s.Velocity, err = decodeVec(f.val)
		case 3:
			s.OnGround = protowire.DecodeBool(f.u)
		case 4:
			s.Fly = protowire.DecodeBool(f.u)
		case 5:
			s.NoClip = protowire.DecodeBool(f.u)
		case 6:
			s.Jumped = protowire.DecodeBool(f.u)
		}
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

func decodeFrame(b []byte) (Frame, error) {
	var fr Frame
	fs, err := fields(b)
	if err != nil {
		return fr, err
	}
	for _, f := range fs {
		var err error
		switch f.num {
		case 1:
			fr.Tick = f.u
		case 2:
			fr.Dt = math.Float64frombits(f.u)
		case 3:
			fr.Move, err = decodeVec(f.val)
		case 4:
			fr.Jump = protowire.DecodeBool(f.u)
		case 5:
			fr.State, err = decodeSnapshot(f.val)
		case 6:
			var cs []field
			cs, err = fields(f.val)
			var c Change
			for _, cf := range cs {
				switch cf.num {
				case 1:
					c.Field = string(cf.val)
				case 2:
					c.From = string(cf.val)
				case 3:
					c.To = string(cf.val)
				}
			}
			fr.Changes = append(fr.Changes, c)
		case 7:
			var r Record
			r, err = decodeRecord(f.val)
			fr.Traces = append(fr.Traces, r)
		}
		if err != nil {
			return fr, err
		}
	}
	return fr, nil
}

// Unmarshal decodes a log written by Marshal or WriteTo.
func Unmarshal(b []byte) (uuid.UUID, []Frame, error) {
	var session uuid.UUID
	fs, err := fields(b)
	if err != nil {
		return session, nil, err
	}
	var frames []Frame
	for _, f := range fs {
		switch f.num {
		case 1:
			if session, err = uuid.FromBytes(f.val); err != nil {
				return session, nil, errors.Wrap(err, "trace: session")
			}
		case 2:
			fr, err := decodeFrame(f.val)
			if err != nil {
				return session, nil, errors.Wrapf(err, "trace: frame %d", len(frames))
			}
			frames = append(frames, fr)
		}
	}
	return session, frames, nil
}
