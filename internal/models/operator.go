package models

// OperatorKind discriminates who runs a zone or employs a trainer.
type OperatorKind string

const (
	OperatorCompany   OperatorKind = "COMPANY"
	OperatorFranchise OperatorKind = "FRANCHISE"
)

// Operator identifies the operating entity for a zone, trainer or purchase.
// The central company carries no franchise id; a franchise always does.
// Using an explicit variant instead of a nullable franchise id keeps the
// "null means company" convention out of every function signature.
type Operator struct {
	Kind        OperatorKind `json:"kind"`
	FranchiseID string       `json:"franchise_id,omitempty"`
}

// CompanyOperator returns the central-company operator.
func CompanyOperator() Operator {
	return Operator{Kind: OperatorCompany}
}

// FranchiseOperator returns the operator for a specific franchise.
func FranchiseOperator(id string) Operator {
	return Operator{Kind: OperatorFranchise, FranchiseID: id}
}

// OperatorFromFranchiseID maps the persisted nullable column back to the
// variant form.
func OperatorFromFranchiseID(franchiseID *string) Operator {
	if franchiseID == nil || *franchiseID == "" {
		return CompanyOperator()
	}
	return FranchiseOperator(*franchiseID)
}

// FranchiseIDPtr maps the variant back to the nullable column form.
func (o Operator) FranchiseIDPtr() *string {
	if o.Kind != OperatorFranchise || o.FranchiseID == "" {
		return nil
	}
	id := o.FranchiseID
	return &id
}

// IsCompany reports whether the operator is the central company.
func (o Operator) IsCompany() bool {
	return o.Kind != OperatorFranchise
}

// Equal reports whether two operators are the same entity.
func (o Operator) Equal(other Operator) bool {
	if o.IsCompany() != other.IsCompany() {
		return false
	}
	if o.IsCompany() {
		return true
	}
	return o.FranchiseID == other.FranchiseID
}

// String renders the operator for logs and eligibility reasons.
func (o Operator) String() string {
	if o.IsCompany() {
		return "company"
	}
	return "franchise:" + o.FranchiseID
}
