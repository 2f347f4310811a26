package param

import (
	"github.com/justyntemme/chopgo/pkg/chop"
)

// Registry satisfies the host's parameter manager so a processor's
// SetupParameters can declare straight into it.
var _ chop.ParameterManager = (*Registry)(nil)

// ValidName reports whether name follows the host naming rule: one uppercase
// letter followed by lowercase letters or digits.
func ValidName(name string) bool {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// AppendFloat declares a float parameter. The slider range becomes the
// parameter range.
func (r *Registry) AppendFloat(np chop.NumericParameter) chop.ParAppendResult {
	if !ValidName(np.Name) {
		return chop.InvalidName
	}

	min, max := np.MinSliders[0], np.MaxSliders[0]
	if np.ClampMins[0] {
		min = np.MinValues[0]
	}
	if np.ClampMaxes[0] {
		max = np.MaxValues[0]
	}
	if max <= min {
		min, max = 0, 1
	}

	p := SliderParameter(r.nextID(), np.Name, min, max, np.DefaultValues[0]).
		Label(labelOr(np.Label, np.Name)).
		Page(np.Page).
		Build()
	return r.append(p)
}

// AppendMenu declares a menu parameter over names. A non-empty default must
// be one of the names.
func (r *Registry) AppendMenu(sp chop.StringParameter, names, labels []string) chop.ParAppendResult {
	if !ValidName(sp.Name) {
		return chop.InvalidName
	}
	if len(names) == 0 || len(names) != len(labels) {
		return chop.InvalidSize
	}

	def := 0
	if sp.DefaultValue != "" {
		def = -1
		for i, n := range names {
			if n == sp.DefaultValue {
				def = i
				break
			}
		}
		if def < 0 {
			return chop.InvalidDefault
		}
	}

	p := Choice(r.nextID(), sp.Name, names, labels).
		Label(labelOr(sp.Label, sp.Name)).
		Page(sp.Page).
		Default(float64(def)).
		Build()
	return r.append(p)
}

// AppendPulse declares a momentary button.
func (r *Registry) AppendPulse(np chop.NumericParameter) chop.ParAppendResult {
	if !ValidName(np.Name) {
		return chop.InvalidName
	}

	p := PulseParameter(r.nextID(), np.Name).
		Label(labelOr(np.Label, np.Name)).
		Page(np.Page).
		Build()
	return r.append(p)
}

func (r *Registry) append(p *Parameter) chop.ParAppendResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[p.Name]; exists {
		return chop.DuplicateName
	}
	if !r.addLocked(p) {
		return chop.Unknown
	}
	return chop.Success
}

func (r *Registry) nextID() uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var id uint32
	for _, existing := range r.order {
		if existing >= id {
			id = existing + 1
		}
	}
	return id
}

func labelOr(label, name string) string {
	if label == "" {
		return name
	}
	return label
}
