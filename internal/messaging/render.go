package messaging

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/engine"
)

// Renderer expands message templates. Codes follow the usual MUD style:
//
//	$n/$N   actor/target name
//	$e/$E   actor/target subject pronoun (he, she, it)
//	$m/$M   actor/target object pronoun (him, her, it)
//	$s/$S   actor/target possessive (his, her, its)
//	$a      ability name
//	$p      object name
//	$v      vehicle name
//	$r      room name
//	$$      a literal dollar sign
//
// {key} is replaced by a message token such as {amount}.
type Renderer struct {
	lang language.Tag
}

// NewRenderer creates a renderer for English text
func NewRenderer() *Renderer {
	return &Renderer{lang: language.English}
}

// casers are stateful, so each call gets its own
func (r *Renderer) title() cases.Caser {
	return cases.Title(r.lang, cases.NoLower)
}

// Render expands tmpl for msg and capitalizes the result
func (r *Renderer) Render(tmpl string, msg engine.Message) string {
	var b strings.Builder
	b.Grow(len(tmpl) + 16)

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '$' && i+1 < len(tmpl):
			i++
			b.WriteString(r.code(tmpl[i], msg))
		case c == '{':
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			key := tmpl[i+1 : i+end]
			if v, ok := msg.Tokens[key]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(tmpl[i : i+end+1])
			}
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return r.Capitalize(b.String())
}

// Capitalize upper-cases the first word of a line
func (r *Renderer) Capitalize(line string) string {
	if line == "" {
		return line
	}
	end := strings.IndexByte(line, ' ')
	if end < 0 {
		return r.title().String(line)
	}
	return r.title().String(line[:end]) + line[end:]
}

// AbilityName is the display form of an ability name
func (r *Renderer) AbilityName(name string) string {
	return r.title().String(name)
}

func (r *Renderer) code(c byte, msg engine.Message) string {
	switch c {
	case 'n':
		return name(msg.Actor)
	case 'N':
		return name(msg.Char)
	case 'e':
		return subject(msg.Actor)
	case 'E':
		return subject(msg.Char)
	case 'm':
		return object(msg.Actor)
	case 'M':
		return object(msg.Char)
	case 's':
		return possessive(msg.Actor)
	case 'S':
		return possessive(msg.Char)
	case 'a':
		if msg.Ability != nil {
			return msg.Ability.Name
		}
		return "that"
	case 'p':
		if msg.Obj != nil {
			return msg.Obj.Name
		}
		return "something"
	case 'v':
		if msg.Vehicle != nil {
			return msg.Vehicle.Name
		}
		return "something"
	case 'r':
		if msg.Room != nil {
			return msg.Room.Name
		}
		if msg.Actor != nil && msg.Actor.Room != nil {
			return msg.Actor.Room.Name
		}
		return "somewhere"
	case '$':
		return "$"
	}
	return "$" + string(c)
}

func name(ch *world.Character) string {
	if ch == nil {
		return "someone"
	}
	return ch.Name
}

func subject(ch *world.Character) string {
	if ch == nil {
		return "it"
	}
	switch ch.Sex {
	case world.SexMale:
		return "he"
	case world.SexFemale:
		return "she"
	}
	return "it"
}

func object(ch *world.Character) string {
	if ch == nil {
		return "it"
	}
	switch ch.Sex {
	case world.SexMale:
		return "him"
	case world.SexFemale:
		return "her"
	}
	return "it"
}

func possessive(ch *world.Character) string {
	if ch == nil {
		return "its"
	}
	switch ch.Sex {
	case world.SexMale:
		return "his"
	case world.SexFemale:
		return "her"
	}
	return "its"
}
