package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func finishedTournament(t *testing.T) *bracket.Tournament {
	t.Helper()
	tournament := &bracket.Tournament{ID: uuid.New(), Name: "Copa", Type: bracket.SingleElimination}
	b, err := bracket.Build([]bracket.Player{{Name: "Ana"}, {Name: "Bia"}}, tournament.BaseState())
	require.NoError(t, err)
	_, err = b.ReportScore(1, 2, 0)
	require.NoError(t, err)
	tournament.Bracket = b
	tournament.Status = bracket.TournamentCompleted
	return tournament
}

func TestUpload(t *testing.T) {
	client := &fakeS3{}
	a := New(client, "cue-archive")
	tournament := finishedTournament(t)

	require.NoError(t, a.Upload(context.Background(), tournament))
	require.Len(t, client.inputs, 1)

	in := client.inputs[0]
	assert.Equal(t, "cue-archive", aws.ToString(in.Bucket))
	assert.Equal(t, "brackets/"+tournament.ID.String()+".json", aws.ToString(in.Key))
	assert.Equal(t, "application/json", aws.ToString(in.ContentType))
	assert.Equal(t, int64(len(client.bodies[0])), aws.ToInt64(in.ContentLength))

	var got bracket.Tournament
	require.NoError(t, json.Unmarshal(client.bodies[0], &got))
	require.NotNil(t, got.Bracket.Champion)
	assert.Equal(t, "Ana", got.Bracket.Champion.Name)
}

func TestUploadError(t *testing.T) {
	a := New(&fakeS3{err: errors.New("boom")}, "cue-archive")
	err := a.Upload(context.Background(), finishedTournament(t))
	assert.ErrorContains(t, err, "boom")
}

func TestDisabledArchiver(t *testing.T) {
	a, err := NewFromConfig(context.Background(), "", "us-east-1")
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.NoError(t, a.Upload(context.Background(), finishedTournament(t)))
}
