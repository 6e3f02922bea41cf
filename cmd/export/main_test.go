package main

import (
	"bytes"
	"encoding/csv"
	"testing"

	"b200/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	rows := []domain.Record{{Name: "Kim, Minji", Date: "2025-10-01", Tickets: "5"}}

	require.NoError(t, writeRows(csv.NewWriter(&buf), rows))

	assert.Equal(t,
		"name,email,phone,date,tickets,start_time,end_time,reservation_time\n"+
			"\"Kim, Minji\",,,2025-10-01,5,,,\n",
		buf.String())
}
