package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Step is a state of the checkout workflow.
type Step string

const (
	StepCustomerInfo    Step = "customer_info"
	StepShippingAddress Step = "shipping_address"
	StepShippingMethod  Step = "shipping_method"
	StepPaymentMethod   Step = "payment_method"
	StepSubmitting      Step = "submitting"
	StepSuccess         Step = "success"
	StepExited          Step = "exited"
)

var interactiveSteps = []Step{StepCustomerInfo, StepShippingAddress, StepShippingMethod, StepPaymentMethod}

// Number returns the 1-based position of an interactive step, 0 otherwise.
func (s Step) Number() int {
	for idx, step := range interactiveSteps {
		if step == s {
			return idx + 1
		}
	}
	return 0
}

func (s Step) Interactive() bool { return s.Number() > 0 }

// PlacedOrder is what the workflow remembers about a successful submission.
type PlacedOrder struct {
	ID           string
	OrderNumber  string
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	TotalAmount  decimal.Decimal
}

// Workflow is the four-step checkout wizard of one session.
type Workflow struct {
	step   Step
	data   Data
	banner string
	placed *PlacedOrder
}

// NewWorkflow starts at the customer step with default shipping and payment selected.
func NewWorkflow() *Workflow {
	return &Workflow{
		step: StepCustomerInfo,
		data: Data{
			ShippingMethod: DefaultShippingMethod,
			PaymentMethod:  DefaultPaymentMethod,
		},
	}
}

func (w *Workflow) Step() Step { return w.step }

func (w *Workflow) Data() Data {
	d := w.data
	if d.BillingAddress != nil {
		billing := *d.BillingAddress
		d.BillingAddress = &billing
	}
	return d
}

// Banner is the single error message surfaced on the current step, if any.
func (w *Workflow) Banner() string { return w.banner }

func (w *Workflow) PlacedOrder() (PlacedOrder, bool) {
	if w.placed == nil {
		return PlacedOrder{}, false
	}
	return *w.placed, true
}

func (w *Workflow) UpdateCustomer(name, email, phone, cpf string) error {
	if err := w.ensureEditable("update customer"); err != nil {
		return err
	}
	w.data.CustomerName = strings.TrimSpace(name)
	w.data.CustomerEmail = strings.TrimSpace(email)
	w.data.CustomerPhone = strings.TrimSpace(phone)
	w.data.CustomerCPF = strings.TrimSpace(cpf)
	return nil
}

func (w *Workflow) UpdateShippingAddress(addr Address) error {
	if err := w.ensureEditable("update shipping address"); err != nil {
		return err
	}
	w.data.ShippingAddress = addr
	return nil
}

// UpdateBillingAddress sets a separate billing address; nil means "same as shipping".
func (w *Workflow) UpdateBillingAddress(addr *Address) error {
	if err := w.ensureEditable("update billing address"); err != nil {
		return err
	}
	if addr == nil {
		w.data.BillingAddress = nil
		return nil
	}
	billing := *addr
	w.data.BillingAddress = &billing
	return nil
}

func (w *Workflow) SelectShippingMethod(id ShippingMethod) error {
	if err := w.ensureEditable("select shipping method"); err != nil {
		return err
	}
	if _, ok := LookupShipping(id); !ok {
		return ErrUnknownShippingMethod
	}
	w.data.ShippingMethod = id
	return nil
}

func (w *Workflow) SelectPaymentMethod(id PaymentMethod) error {
	if err := w.ensureEditable("select payment method"); err != nil {
		return err
	}
	if _, ok := LookupPayment(id); !ok {
		return ErrUnknownPaymentMethod
	}
	w.data.PaymentMethod = id
	return nil
}

func (w *Workflow) SetNotes(notes string) error {
	if err := w.ensureEditable("set notes"); err != nil {
		return err
	}
	w.data.Notes = notes
	return nil
}

// Next validates the current step and advances. On failure the workflow
// stays put and the banner is set; entered data is kept.
func (w *Workflow) Next() error {
	switch w.step {
	case StepCustomerInfo, StepShippingAddress, StepShippingMethod:
	default:
		return transitionError(w.step, "advance")
	}
	if err := validateStep(w.step, w.data); err != nil {
		w.banner = err.Message
		return err
	}
	w.banner = ""
	w.step = interactiveSteps[w.step.Number()]
	return nil
}

// Back moves one step back without validation; from the first step it exits.
func (w *Workflow) Back() error {
	switch w.step {
	case StepCustomerInfo:
		w.step = StepExited
	case StepShippingAddress, StepShippingMethod, StepPaymentMethod:
		w.step = interactiveSteps[w.step.Number()-2]
	default:
		return transitionError(w.step, "go back")
	}
	w.banner = ""
	return nil
}

// BeginSubmission moves the payment step into submitting. The customer and
// address steps are validated again; the first failing one becomes current.
func (w *Workflow) BeginSubmission() error {
	if w.step == StepSubmitting {
		return ErrSubmissionInProgress
	}
	if w.step != StepPaymentMethod {
		return transitionError(w.step, "submit")
	}
	for _, step := range []Step{StepCustomerInfo, StepShippingAddress} {
		if err := validateStep(step, w.data); err != nil {
			w.step = step
			w.banner = err.Message
			return err
		}
	}
	w.banner = ""
	w.step = StepSubmitting
	return nil
}

func (w *Workflow) CompleteSubmission(order PlacedOrder) error {
	if w.step != StepSubmitting {
		return transitionError(w.step, "complete submission")
	}
	w.placed = &order
	w.step = StepSuccess
	w.banner = ""
	return nil
}

// FailSubmission returns to the payment step with the generic retry banner.
func (w *Workflow) FailSubmission() error {
	if w.step != StepSubmitting {
		return transitionError(w.step, "fail submission")
	}
	w.step = StepPaymentMethod
	w.banner = SubmissionFailedMessage
	return nil
}

// ShippingCost is the flat price of the selected shipping method.
func (w *Workflow) ShippingCost() decimal.Decimal {
	opt, ok := LookupShipping(w.data.ShippingMethod)
	if !ok {
		return decimal.Zero
	}
	return opt.Price
}

// Summary is the read model rendered by every checkout step.
type Summary struct {
	Step         Step
	StepNumber   int
	Data         Data
	Banner       string
	CartTotal    decimal.Decimal
	ShippingCost decimal.Decimal
	FinalTotal   decimal.Decimal
	Order        *PlacedOrder
}

// Summary derives finalTotal = cartTotal + shipping cost of the selected method.
// After success the placed order totals are reported instead of the live cart.
func (w *Workflow) Summary(cartTotal decimal.Decimal) Summary {
	s := Summary{
		Step:         w.step,
		StepNumber:   w.step.Number(),
		Data:         w.Data(),
		Banner:       w.banner,
		CartTotal:    cartTotal,
		ShippingCost: w.ShippingCost(),
	}
	s.FinalTotal = s.CartTotal.Add(s.ShippingCost)
	if placed, ok := w.PlacedOrder(); ok {
		s.Order = &placed
		s.CartTotal = placed.Subtotal
		s.ShippingCost = placed.ShippingCost
		s.FinalTotal = placed.TotalAmount
	}
	return s
}

// Clone returns an independent copy of the workflow.
func (w *Workflow) Clone() *Workflow {
	clone := *w
	clone.data = w.Data()
	if w.placed != nil {
		placed := *w.placed
		clone.placed = &placed
	}
	return &clone
}

func (w *Workflow) ensureEditable(action string) error {
	if !w.step.Interactive() {
		return transitionError(w.step, action)
	}
	return nil
}

func validateStep(step Step, data Data) *ValidationError {
	switch step {
	case StepCustomerInfo:
		if !data.customerComplete() {
			return &ValidationError{Step: step, Message: CustomerInfoMessage}
		}
	case StepShippingAddress:
		if !data.ShippingAddress.Complete() {
			return &ValidationError{Step: step, Message: ShippingAddressMessage}
		}
	}
	return nil
}
