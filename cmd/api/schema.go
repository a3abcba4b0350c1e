package main

import "database/sql"

// ensureSchema creates every table the repositories query. Statements are
// idempotent so restarting against an existing database is safe.
func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id SERIAL PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            category_id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            parent_id INT REFERENCES categories(category_id) ON DELETE SET NULL,
            ord INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            product_id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            gender TEXT NOT NULL DEFAULT 'unisex',
            category_id INT NOT NULL REFERENCES categories(category_id),
            price INT NOT NULL,
            discount_price INT,
            status TEXT NOT NULL DEFAULT 'active',
            image_url TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS product_options (
            option_id SERIAL PRIMARY KEY,
            product_id INT NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            stock INT NOT NULL DEFAULT 0,
            additional_price INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            cart_id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            product_id INT NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
            option_id INT REFERENCES product_options(option_id) ON DELETE CASCADE,
            quantity INT NOT NULL CHECK (quantity > 0)
        )`,
		// NULLS NOT DISTINCT so two lines for the same product without an
		// option still collide, letting the upsert merge them.
		`CREATE UNIQUE INDEX IF NOT EXISTS cart_items_user_product_option
            ON cart_items (user_id, product_id, option_id) NULLS NOT DISTINCT`,
		`CREATE TABLE IF NOT EXISTS orders (
            order_id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(user_id),
            total_price INT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            recipient_name TEXT NOT NULL,
            recipient_phone TEXT NOT NULL,
            postal_code TEXT NOT NULL,
            address TEXT NOT NULL,
            detail_address TEXT,
            message TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            order_id INT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
            product_id INT NOT NULL REFERENCES products(product_id),
            option_id INT REFERENCES product_options(option_id),
            quantity INT NOT NULL CHECK (quantity > 0),
            price INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            address_id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            recipient_name TEXT NOT NULL,
            recipient_phone TEXT NOT NULL,
            postal_code TEXT NOT NULL,
            address TEXT NOT NULL,
            detail_address TEXT,
            is_default BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            review_id SERIAL PRIMARY KEY,
            product_id INT NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
            user_id INT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
            message_id SERIAL PRIMARY KEY,
            room_id INT NOT NULL,
            user_id INT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            sender_name TEXT NOT NULL,
            sender_role TEXT NOT NULL DEFAULT 'user',
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS chat_messages_room
            ON chat_messages (room_id, message_id DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
