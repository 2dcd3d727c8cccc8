package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/re-cinq/instruct/internal/options"
	"github.com/re-cinq/instruct/internal/schema"
	"github.com/spf13/pflag"
)

// optionValue is a pflag.Value for one option. It converts and checks the
// text given on the command line according to the option's kind.
type optionValue struct {
	flag    options.Flag
	val     any
	changed bool
}

func (v *optionValue) String() string {
	cur := v.val
	if !v.changed {
		cur = v.flag.Default
	}
	switch c := cur.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(c))
		for i, p := range c {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(c)
	}
}

func (v *optionValue) Set(text string) error {
	parsed, err := v.parse(text)
	if err != nil {
		return err
	}
	if v.flag.Multiple {
		list, _ := v.val.([]any)
		v.val = append(list, parsed)
	} else {
		v.val = parsed
	}
	v.changed = true
	return nil
}

func (v *optionValue) parse(text string) (any, error) {
	if len(v.flag.Choices) > 0 {
		c, ok := v.flag.Match(text)
		if !ok {
			return nil, fmt.Errorf("invalid choice %q (choose from %s)", text, choiceList(v.flag))
		}
		return c, nil
	}
	switch v.flag.Kind {
	case schema.KindInteger:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", text)
		}
		return n, nil
	case schema.KindNumber:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", text)
		}
		return f, nil
	case schema.KindBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", text)
		}
		return b, nil
	}
	return text, nil
}

func (v *optionValue) Type() string {
	switch {
	case v.flag.Multiple:
		return "choices"
	case len(v.flag.Choices) > 0:
		return "choice"
	case v.flag.Kind == schema.KindInteger:
		return "int"
	case v.flag.Kind == schema.KindNumber:
		return "float"
	case v.flag.Kind == schema.KindBoolean:
		return "bool"
	}
	return "string"
}

// negatedValue backs --no-name: setting it stores the inverse on the option.
type negatedValue struct {
	target *optionValue
}

func (n *negatedValue) String() string { return "" }
func (n *negatedValue) Type() string   { return "bool" }

func (n *negatedValue) Set(text string) error {
	b, err := strconv.ParseBool(text)
	if err != nil {
		return fmt.Errorf("%q is not a boolean", text)
	}
	n.target.val = !b
	n.target.changed = true
	return nil
}

func choiceList(f options.Flag) string {
	values := make([]string, len(f.Choices))
	for i, c := range f.Choices {
		values[i] = fmt.Sprint(c.Value)
	}
	return strings.Join(values, ", ")
}

// binder turns option descriptors into a pflag.FlagSet and collects the
// answers after parsing.
type binder struct {
	fs     *pflag.FlagSet
	values []*optionValue
}

func newBinder(name string, flags []options.Flag) *binder {
	b := &binder{fs: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	b.fs.SortFlags = false
	for _, f := range flags {
		v := &optionValue{flag: f}
		b.values = append(b.values, v)

		pf := b.fs.VarPF(v, strings.TrimPrefix(f.Name, "--"), "", f.Usage())
		if f.Kind == schema.KindBoolean {
			pf.NoOptDefVal = "true"
		}
		if f.Negation != "" {
			neg := b.fs.VarPF(&negatedValue{target: v}, strings.TrimPrefix(f.Negation, "--"), "", "Answer no to "+f.Name)
			neg.NoOptDefVal = "true"
		}
	}
	return b
}

// addFlags makes the command's own flags (and inherited global ones)
// parseable alongside the options.
func (b *binder) addFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name != "help" && b.fs.Lookup(f.Name) == nil {
			b.fs.AddFlag(f)
		}
	})
}

func (b *binder) parse(args []string) error {
	b.fs.SetOutput(io.Discard)
	if err := b.fs.Parse(args); err != nil {
		return err
	}
	if extra := b.fs.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument(s): %s", strings.Join(extra, " "))
	}
	return nil
}

// answers returns given values, falling back to defaults. Missing required
// options are reported together.
func (b *binder) answers() (map[string]any, error) {
	out := make(map[string]any)
	var missing []string
	for _, v := range b.values {
		switch {
		case v.changed:
			out[v.flag.Key] = v.val
		case v.flag.Default != nil:
			out[v.flag.Key] = v.flag.Default
		case v.flag.Required:
			name := v.flag.Name
			if v.flag.Negation != "" {
				name += "/" + v.flag.Negation
			}
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required option(s): %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// usage renders the option flags for help output.
func (b *binder) usage() string {
	return b.fs.FlagUsages()
}
