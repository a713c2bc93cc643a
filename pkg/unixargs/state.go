package unixargs

type state uint8

const (
	stateNeutral state = iota
	stateName
	stateValue
	stateDash
)

func (s state) String() string {
	switch s {
	case stateName:
		return "ArgumentName"
	case stateValue:
		return "ArgumentValue"
	case stateDash:
		return "DashSequence"
	default:
		return "Neutral"
	}
}

// class groups characters the machine treats alike.
type class uint8

const (
	classOther class = iota
	classDash
	classEquals
	classSpace
	classQuote
)

func classify(r rune) class {
	switch r {
	case '-':
		return classDash
	case '=':
		return classEquals
	case ' ':
		return classSpace
	case '"':
		return classQuote
	default:
		return classOther
	}
}

type action uint8

const (
	actNone action = iota
	actAppendName
	actAppendValue
	actAppendSpace
	actEndName
	actFlush
	actOpenQuote
	actCloseQuote
	actUnexpectedQuote
)

type step struct {
	next state
	act  action
}

// transition is total over (state, class, quoted). For actEndName the
// returned next state is stateValue; the scanner moves to stateNeutral
// instead when the name resolves to a boolean parameter.
func transition(s state, c class, quoted bool) step {
	switch c {
	case classDash:
		if s == stateDash {
			return step{stateName, actNone}
		}
		return step{stateDash, actNone}

	case classEquals:
		if s == stateName {
			return step{stateValue, actNone}
		}

	case classSpace:
		switch {
		case quoted:
			return step{s, actAppendSpace}
		case s == stateName:
			return step{stateValue, actEndName}
		case s == stateValue:
			return step{stateNeutral, actFlush}
		}
		return step{s, actNone}

	case classQuote:
		if s != stateValue {
			return step{s, actUnexpectedQuote}
		}
		if quoted {
			return step{stateNeutral, actCloseQuote}
		}
		return step{s, actOpenQuote}
	}

	switch s {
	case stateName:
		return step{s, actAppendName}
	case stateValue:
		return step{s, actAppendValue}
	}
	return step{s, actNone}
}
