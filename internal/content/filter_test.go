package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsBlockedWord(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		blocked bool
	}{
		{name: "Clean Swedish name", text: "Maja Svensson", blocked: false},
		{name: "Clean equipment name", text: "Fotboll", blocked: false},
		{name: "Swedish profanity", text: "skitboll", blocked: true},
		{name: "English profanity", text: "fuckball", blocked: true},
		{name: "Uppercase is caught", text: "SKIT", blocked: true},
		{name: "Embedded word", text: "en jävla boll", blocked: true},
		{name: "Empty string", text: "", blocked: false},
		{name: "Whitespace only", text: "   ", blocked: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.blocked, ContainsBlockedWord(tc.text))
		})
	}
}
