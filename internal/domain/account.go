package domain

import "time"

// DefaultAccountID identifica a conta configurada por variáveis de ambiente.
// O id é fixo para que os documentos dessa conta sejam sempre os mesmos entre execuções.
const DefaultAccountID = "default_hidden_account"

// DefaultAccountMarketplace é usado quando a conta salva não informa marketplaces.
const DefaultAccountMarketplace = "US"

// Account é uma conta de seller. Só as credenciais são obrigatórias; códigos de marketplace
// desconhecidos são ignorados um a um durante o sync.
type Account struct {
	ID           string     `firestore:"-" json:"id"`
	Name         string     `firestore:"name" json:"name"`
	ClientID     string     `firestore:"client_id" json:"-" validate:"required"`
	ClientSecret string     `firestore:"client_secret" json:"-" validate:"required"`
	RefreshToken string     `firestore:"refresh_token" json:"-" validate:"required"`
	Marketplaces []string   `firestore:"marketplaces" json:"marketplaces"`
	LastSyncedAt *time.Time `firestore:"last_synced_at" json:"last_synced_at,omitempty"`
}

func (a *Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}
