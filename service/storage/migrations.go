package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    run_id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    run_timestamp   DATETIME DEFAULT CURRENT_TIMESTAMP,
    run_duration    INTEGER,
    cli_version     TEXT,
    subs_requested  INTEGER DEFAULT 0,
    subs_assessed   INTEGER DEFAULT 0,
    total_resources INTEGER DEFAULT 0,
    total_endpoints INTEGER DEFAULT 0,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp
    ON runs(run_timestamp DESC);

CREATE TABLE IF NOT EXISTS findings (
    finding_id        INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id            INTEGER NOT NULL,
    subscription_id   TEXT NOT NULL,
    subscription_name TEXT,
    tenant_id         TEXT,
    tenant_name       TEXT,
    resource_group    TEXT NOT NULL,
    resource_kind     TEXT NOT NULL,
    resource_name     TEXT NOT NULL,
    endpoint          TEXT NOT NULL,
    label             TEXT,
    created_at        DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
CREATE INDEX IF NOT EXISTS idx_findings_subscription ON findings(subscription_id);
CREATE INDEX IF NOT EXISTS idx_findings_kind ON findings(resource_kind);

CREATE TABLE IF NOT EXISTS failures (
    failure_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id          INTEGER NOT NULL,
    subscription_id TEXT NOT NULL,
    resource_kind   TEXT,
    message         TEXT NOT NULL,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_failures_run ON failures(run_id);
`
