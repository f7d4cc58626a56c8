package email

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecipients(t *testing.T) {
	require.Equal(t, Recipients{"one@example.com"}, Single("one@example.com"))
	require.Equal(t,
		Recipients{"one@example.com", "two@example.com"},
		Many([]string{"one@example.com", "two@example.com"}),
	)
}

func TestRecipientsValidate(t *testing.T) {
	require.NoError(t, Single("one@example.com").Validate())
	require.NoError(t, Many([]string{"one@example.com", "two@example.com"}).Validate())

	require.Error(t, Recipients{}.Validate())
	require.Error(t, Single("not-an-address").Validate())
	require.Error(t, Many([]string{"one@example.com", "bad"}).Validate())
}

func TestIsEmailValid(t *testing.T) {
	require.True(t, IsEmailValid("user@example.com"))
	require.False(t, IsEmailValid("user@example"))
	require.False(t, IsEmailValid("userexample.com"))
	require.False(t, IsEmailValid("user @example.com"))
}

func TestSendEmailInputValidate(t *testing.T) {
	input := SendEmailInput{To: Single("one@example.com"), Subject: "Hello", Body: "<p>Hi</p>"}
	require.NoError(t, input.Validate())

	input.Body = ""
	require.Error(t, input.Validate())

	input.Body = "<p>Hi</p>"
	input.To = nil
	require.Error(t, input.Validate())
}
