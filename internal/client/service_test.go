package client_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/payflow/internal/client"
)

func validParams() client.SaveParams {
	return client.SaveParams{
		Name:         "ACME",
		Dossier:      "12345",
		TransferDay:  5,
		OdooHost:     "acme.odoo.com",
		OdooDatabase: "acme",
		OdooLogin:    "compta@acme.fr",
		OdooPassword: "secret",
		JournalCode:  "PAIE",
		CompanyID:    1,
	}
}

func TestService_Save(t *testing.T) {
	type testCase struct {
		name      string
		id        string
		params    func() client.SaveParams
		setupMock func(repo *client.MockRepository, enc *client.MockEncrypter)
		wantErr   bool
		wantValid bool
	}

	tests := []testCase{
		{
			name:   "NewPasswordIsEncrypted",
			id:     "acme",
			params: validParams,
			setupMock: func(repo *client.MockRepository, enc *client.MockEncrypter) {
				enc.EXPECT().Encrypt("secret").Return("gAAAA-token", nil)
				repo.EXPECT().
					UpsertClient(gomock.Any(), gomock.Any(), false).
					DoAndReturn(func(_ context.Context, c *client.Client, _ bool) error {
						assert.Equal(t, "acme", c.ID)
						assert.Equal(t, "gAAAA-token", c.OdooPassword)
						return nil
					})
			},
		},
		{
			name: "MaskedPasswordKeepsStored",
			id:   "acme",
			params: func() client.SaveParams {
				p := validParams()
				p.OdooPassword = client.MaskedPassword
				return p
			},
			setupMock: func(repo *client.MockRepository, enc *client.MockEncrypter) {
				enc.EXPECT().Encrypt(gomock.Any()).Times(0)
				repo.EXPECT().UpsertClient(gomock.Any(), gomock.Any(), true).Return(nil)
			},
		},
		{
			name: "EmptyPasswordKeepsStored",
			id:   "acme",
			params: func() client.SaveParams {
				p := validParams()
				p.OdooPassword = ""
				return p
			},
			setupMock: func(repo *client.MockRepository, enc *client.MockEncrypter) {
				repo.EXPECT().UpsertClient(gomock.Any(), gomock.Any(), true).Return(nil)
			},
		},
		{
			name:      "MissingID",
			id:        "  ",
			params:    validParams,
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "TransferDayOutOfRange",
			id:   "acme",
			params: func() client.SaveParams {
				p := validParams()
				p.TransferDay = 32
				return p
			},
			wantErr:   true,
			wantValid: true,
		},
		{
			name:   "EncryptError",
			id:     "acme",
			params: validParams,
			setupMock: func(repo *client.MockRepository, enc *client.MockEncrypter) {
				enc.EXPECT().Encrypt("secret").Return("", errors.New("boom"))
			},
			wantErr: true,
		},
		{
			name:   "RepoError",
			id:     "acme",
			params: validParams,
			setupMock: func(repo *client.MockRepository, enc *client.MockEncrypter) {
				enc.EXPECT().Encrypt("secret").Return("tok", nil)
				repo.EXPECT().UpsertClient(gomock.Any(), gomock.Any(), false).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := client.NewMockRepository(ctrl)
			enc := client.NewMockEncrypter(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, enc)
			}

			svc := client.NewService(repo, enc)
			got, err := svc.Save(context.Background(), tt.id, tt.params())

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)

				var verr *client.ValidationError
				assert.Equal(t, tt.wantValid, errors.As(err, &verr))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ACME", got.Name)
		})
	}
}

func TestService_DueOn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		ListByTransferDay(gomock.Any(), 5).
		Return([]*client.Client{{ID: "a"}, {ID: "b"}}, nil)

	got, err := client.NewService(repo, nil).DueOn(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().GetClient(gomock.Any(), "nope").Return(nil, client.ErrNotFound)

	_, err := client.NewService(repo, nil).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestClient_AlertRecipient(t *testing.T) {
	assert.Equal(t, "compta@acme.fr", (&client.Client{OdooLogin: "compta@acme.fr"}).AlertRecipient())
	assert.Empty(t, (&client.Client{OdooLogin: "admin"}).AlertRecipient())
}

const seedYAML = `
clients:
  - id: acme
    nom: ACME
    numero_dossier_silae: "12345"
    jour_transfert: 5
    odoo_host: acme.odoo.com
    database_odoo: acme
    odoo_login: compta@acme.fr
    odoo_password: secret
    journal_paie_odoo: PAIE
    odoo_company_id: 2
    odoo_version: 17
  - id: beta
    nom: Beta
    jour_transfert: 10
`

func TestLoadSeed(t *testing.T) {
	seeds, err := client.LoadSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, seeds, 2)

	assert.Equal(t, "acme", seeds[0].ID)
	assert.Equal(t, "12345", seeds[0].Params.Dossier)
	assert.Equal(t, int64(2), seeds[0].Params.CompanyID)
	assert.Equal(t, 17, seeds[0].Params.OdooVersion)
	assert.Equal(t, 10, seeds[1].Params.TransferDay)
}

func TestLoadSeed_Invalid(t *testing.T) {
	_, err := client.LoadSeed(strings.NewReader("clients:\n  - nom: missing id\n"))
	assert.Error(t, err)

	_, err = client.LoadSeed(strings.NewReader("clients:\n  - id: x\n    unknown: 1\n"))
	assert.Error(t, err)
}

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	enc := client.NewMockEncrypter(ctrl)

	enc.EXPECT().Encrypt("secret").Return("tok", nil)
	repo.EXPECT().UpsertClient(gomock.Any(), gomock.Any(), false).Return(nil)
	repo.EXPECT().UpsertClient(gomock.Any(), gomock.Any(), true).Return(nil)

	seeds, err := client.LoadSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	n, err := client.NewService(repo, enc).Import(context.Background(), seeds)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
