package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('admin', 'agent_comptable', 'chef_agence');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_status') THEN
			CREATE TYPE user_status AS ENUM ('active', 'inactive', 'pending');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'message_type') THEN
			CREATE TYPE message_type AS ENUM ('text', 'image', 'file', 'voice');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS agencies (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255),
		manager VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		role user_role NOT NULL DEFAULT 'agent_comptable',
		phone VARCHAR(32),
		agency UUID REFERENCES agencies(id),
		status user_status NOT NULL DEFAULT 'pending',
		join_date DATE NOT NULL DEFAULT CURRENT_DATE,
		password_hash VARCHAR(128) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (LOWER(email));`,
	`CREATE TABLE IF NOT EXISTS voyages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		nom_chauffeur VARCHAR(255) NOT NULL,
		numero_vehicule VARCHAR(64) NOT NULL,
		numero_bordereau VARCHAR(64) NOT NULL,
		recette_brute NUMERIC(18,2) NOT NULL CHECK (recette_brute >= 0),
		retenue NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (retenue >= 0),
		nombre_places INTEGER NOT NULL DEFAULT 0 CHECK (nombre_places >= 0),
		date DATE NOT NULL,
		agence UUID NOT NULL REFERENCES agencies(id),
		ville VARCHAR(255) NOT NULL DEFAULT '',
		agent_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_voyages_agent_id ON voyages (agent_id);`,
	`CREATE INDEX IF NOT EXISTS idx_voyages_date ON voyages (date);`,
	`CREATE INDEX IF NOT EXISTS idx_voyages_agence ON voyages (agence);`,
	`CREATE TABLE IF NOT EXISTS chat_groups (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		description TEXT,
		created_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS group_members (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		group_id UUID NOT NULL REFERENCES chat_groups(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id),
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_group_members ON group_members (group_id, user_id);`,
	`CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		sender_id UUID NOT NULL REFERENCES users(id),
		receiver_id UUID REFERENCES users(id),
		group_id UUID REFERENCES chat_groups(id) ON DELETE CASCADE,
		content TEXT NOT NULL DEFAULT '',
		message_type message_type NOT NULL DEFAULT 'text',
		file_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK ((receiver_id IS NULL) <> (group_id IS NULL))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_messages_sender_id ON messages (sender_id);`,
	`CREATE INDEX IF NOT EXISTS idx_messages_receiver_id ON messages (receiver_id) WHERE receiver_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_messages_group_id ON messages (group_id) WHERE group_id IS NOT NULL;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
