package suitefile

import (
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"paramrun/internal/domain"
)

// listValues evaluates expr as a list of scalars. want restricts the
// element type; cty.DynamicPseudoType accepts any scalar. A missing
// attribute evaluates to null and yields no values.
func listValues(desc string, expr hcl.Expression, want cty.Type) ([]domain.Value, hcl.Diagnostics, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() || val.IsNull() {
		return nil, diags, nil
	}
	elems, err := elements(desc, val)
	if err != nil {
		return nil, diags, err
	}

	out := make([]domain.Value, 0, len(elems))
	for i, ev := range elems {
		if want != cty.DynamicPseudoType && !ev.IsNull() && !ev.Type().Equals(want) {
			return nil, diags, domain.FormatErrorf(desc, "element %d: expected %s, got %s", i, want.FriendlyName(), ev.Type().FriendlyName())
		}
		v, err := scalar(desc, ev)
		if err != nil {
			return nil, diags, err
		}
		out = append(out, v)
	}
	return out, diags, nil
}

// tupleRows evaluates expr as a list of lists of scalars
func tupleRows(desc string, expr hcl.Expression) ([]domain.Tuple, hcl.Diagnostics, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags, nil
	}
	if val.IsNull() {
		return nil, diags, domain.FormatErrorf(desc, "rows must not be null")
	}
	rows, err := elements(desc, val)
	if err != nil {
		return nil, diags, err
	}

	tuples := make([]domain.Tuple, 0, len(rows))
	for i, row := range rows {
		if row.IsNull() {
			return nil, diags, domain.FormatErrorf(desc, "row %d is null", i+1)
		}
		fields, err := elements(desc, row)
		if err != nil {
			return nil, diags, err
		}
		t := make(domain.Tuple, len(fields))
		for j, f := range fields {
			if t[j], err = scalar(desc, f); err != nil {
				return nil, diags, err
			}
		}
		tuples = append(tuples, t)
	}
	return tuples, diags, nil
}

func elements(desc string, val cty.Value) ([]cty.Value, error) {
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, domain.FormatErrorf(desc, "expected a list, got %s", ty.FriendlyName())
	}
	if !val.IsWhollyKnown() {
		return nil, domain.FormatErrorf(desc, "value is not known")
	}
	return val.AsValueSlice(), nil
}

// scalar converts a cty primitive into a domain value
func scalar(desc string, v cty.Value) (domain.Value, error) {
	if v.IsNull() {
		return domain.Null(), nil
	}
	switch v.Type() {
	case cty.String:
		return domain.Text(v.AsString()), nil
	case cty.Bool:
		return domain.Bool(v.True()), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			return domain.Value{}, domain.FormatErrorf(desc, "%s is not a whole number", bf.String())
		}
		n, acc := bf.Int64()
		if acc != big.Exact {
			return domain.Value{}, domain.FormatErrorf(desc, "%s overflows int64", bf.String())
		}
		return domain.Int(n), nil
	default:
		return domain.Value{}, domain.FormatErrorf(desc, "unsupported value of type %s", v.Type().FriendlyName())
	}
}
