package mailer

import "fmt"

// Email subjects.
const (
	SubjectDepositApproved    = "Deposit Approved - ABS REFERZONE"
	SubjectWithdrawalApproved = "Withdrawal Processed - ABS REFERZONE"
	SubjectCommissionEarned   = "Referral Commission Earned - ABS REFERZONE"
)

// DepositApprovalBody is the notification sent to a user whose deposit was
// approved and credited.
func DepositApprovalBody(fullName, amount string) string {
	return fmt.Sprintf(`
		<h2>Deposit Approved</h2>
		<p>Dear %s,</p>
		<p>Your deposit of PKR %s has been approved and credited to your account balance.</p>
		<p>Thank you for using ABS REFERZONE.</p>
	`, fullName, amount)
}

// WithdrawalApprovalBody is the notification sent when a withdrawal payout
// has been processed.
func WithdrawalApprovalBody(fullName, amount, method string) string {
	return fmt.Sprintf(`
		<h2>Withdrawal Processed</h2>
		<p>Dear %s,</p>
		<p>Your withdrawal of PKR %s has been processed and sent to your %s account.</p>
		<p>Thank you for using ABS REFERZONE.</p>
	`, fullName, amount, method)
}

// CommissionBody is the notification sent to a referrer who earned a
// commission from a referred user's approved deposit.
func CommissionBody(fullName, amount, fromName string) string {
	return fmt.Sprintf(`
		<h2>Referral Commission Earned</h2>
		<p>Dear %s,</p>
		<p>You earned a commission of PKR %s from %s's approved deposit.</p>
		<p>Keep referring to earn more!</p>
	`, fullName, amount, fromName)
}
