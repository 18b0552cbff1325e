package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeNeverErases(t *testing.T) {
	c := Contact{
		Email:     "j@x.com",
		FirstName: "J",
		Phone:     "+1555000111",
		Location:  "Lagos",
	}

	merge(&c, Fields{Phone: "", Location: "   "})

	assert.Equal(t, "+1555000111", c.Phone)
	assert.Equal(t, "Lagos", c.Location)
	assert.Equal(t, "J", c.FirstName)
}

func TestMergeOverwritesNonEmpty(t *testing.T) {
	c := Contact{Email: "j@x.com", Phone: "+1555000111"}

	merge(&c, Fields{Phone: "+1555999222", FirstName: "Jess"})

	assert.Equal(t, "+1555999222", c.Phone)
	assert.Equal(t, "Jess", c.FirstName)
}

func TestMergePointerFields(t *testing.T) {
	bill := 250.0
	subscribed := true

	c := Contact{Email: "j@x.com"}
	merge(&c, Fields{CurrentEnergyBill: &bill, NewsletterSubscribed: &subscribed})

	assert.NotNil(t, c.CurrentEnergyBill)
	assert.Equal(t, 250.0, *c.CurrentEnergyBill)
	assert.True(t, c.NewsletterSubscribed)

	// absent pointers leave stored values alone
	merge(&c, Fields{})
	assert.NotNil(t, c.CurrentEnergyBill)
	assert.True(t, c.NewsletterSubscribed)
}

func TestReplaceClobbersEverything(t *testing.T) {
	bill := 180.0
	c := Contact{
		Email:             "j@x.com",
		FirstName:         "J",
		Phone:             "+1555000111",
		Location:          "Lagos",
		CurrentEnergyBill: &bill,
	}

	replace(&c, Fields{FirstName: "Jess", LastName: "Mori", Phone: "+1555999222"})

	assert.Equal(t, "Jess", c.FirstName)
	assert.Equal(t, "Mori", c.LastName)
	assert.Equal(t, "+1555999222", c.Phone)
	assert.Equal(t, "", c.Location)
	assert.Nil(t, c.CurrentEnergyBill)
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in    string
		first string
		last  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"  Jane   van der Berg ", "Jane", "van der Berg"},
		{"", "", ""},
	}
	for _, tc := range cases {
		first, last := SplitName(tc.in)
		assert.Equal(t, tc.first, first, tc.in)
		assert.Equal(t, tc.last, last, tc.in)
	}
}
