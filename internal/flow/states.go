package flow

// Screen is one step of the kiosk purchase flow.
type Screen string

const (
	ScreenLanguageSelect Screen = "language_select"
	ScreenQuantitySelect Screen = "quantity_select"
	ScreenDonationSelect Screen = "donation_select"
	ScreenPaymentConfirm Screen = "payment_confirm"
	ScreenThankYou       Screen = "thank_you"
)

// Trigger is a visitor action (or timeout) that moves the flow forward.
type Trigger string

const (
	TriggerChooseLanguage Trigger = "choose_language"
	TriggerProceed        Trigger = "proceed"
	TriggerBack           Trigger = "back"
	TriggerSelectDonation Trigger = "select_donation"
	TriggerPay            Trigger = "pay"
	TriggerNewPurchase    Trigger = "new_purchase"
	TriggerIdleTimeout    Trigger = "idle_timeout"
)

type guard int

const (
	guardNone guard = iota
	guardChurch
	guardNotChurch
)

// Transition is a single allowed edge in the purchase flow state machine.
type Transition struct {
	From    Screen
	Trigger Trigger
	Guard   guard
	To      Screen
}

// The flow is linear with one branch: churches collect a donation between
// quantity selection and payment. ThankYou is terminal per purchase and
// loops back to LanguageSelect on reset or idle timeout.
var transitionTable = []Transition{
	{From: ScreenLanguageSelect, Trigger: TriggerChooseLanguage, To: ScreenQuantitySelect},

	{From: ScreenQuantitySelect, Trigger: TriggerProceed, Guard: guardChurch, To: ScreenDonationSelect},
	{From: ScreenQuantitySelect, Trigger: TriggerProceed, Guard: guardNotChurch, To: ScreenPaymentConfirm},
	{From: ScreenQuantitySelect, Trigger: TriggerBack, To: ScreenLanguageSelect},

	{From: ScreenDonationSelect, Trigger: TriggerSelectDonation, To: ScreenPaymentConfirm},
	{From: ScreenDonationSelect, Trigger: TriggerBack, To: ScreenQuantitySelect},

	{From: ScreenPaymentConfirm, Trigger: TriggerPay, To: ScreenThankYou},
	{From: ScreenPaymentConfirm, Trigger: TriggerBack, To: ScreenQuantitySelect},

	{From: ScreenThankYou, Trigger: TriggerNewPurchase, To: ScreenLanguageSelect},
	{From: ScreenThankYou, Trigger: TriggerIdleTimeout, To: ScreenLanguageSelect},
}

// transitionFor returns the target screen for a state+trigger pair, applying
// the church guard where the table requires it.
func transitionFor(from Screen, trigger Trigger, isChurch bool) (Screen, bool) {
	for _, tr := range transitionTable {
		if tr.From != from || tr.Trigger != trigger {
			continue
		}
		switch tr.Guard {
		case guardChurch:
			if !isChurch {
				continue
			}
		case guardNotChurch:
			if isChurch {
				continue
			}
		}
		return tr.To, true
	}
	return "", false
}
