// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

// Copy reads the current value from p, including all its nested values, and
// writes it to w. If the value is an object member, its name is written too.
// On return the cursor of p remains at the copied value; call p.Next to
// advance. Copy returns the first error reported by p, if any.
//
// If p reports a syntax error, Copy ends any containers it started on w, so
// that w is balanced, but the output is incomplete.
func Copy(w *Printer, p *Parser) error {
	depth := 0
loop:
	for {
		node := p.Node()
		if node == None {
			if depth == 0 || p.halt {
				break
			}
			p.End()
			w.End()
			depth--
			if depth == 0 {
				break
			}
			p.Next()
			continue
		}

		name, _ := p.MemberName()
		switch node {
		case Null:
			w.AddNull(name)
		case Boolean:
			w.AddBool(name, p.BoolValue())
		case Number:
			w.AddNumber(name, p.NumberValue())
		case String:
			w.AddString(name, p.StringValue())
		case Object:
			if !p.StartObject() {
				break loop
			}
			w.StartObject(name)
			depth++
			continue
		case Array:
			if !p.StartArray() {
				break loop
			}
			w.StartArray(name)
			depth++
			continue
		}
		if depth == 0 {
			break
		}
		p.Next()
	}
	for ; depth > 0; depth-- {
		w.End()
	}
	return p.Err()
}
