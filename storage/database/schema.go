package database

const schema = `
CREATE TABLE IF NOT EXISTS identities (
    id              SERIAL PRIMARY KEY,
    email           TEXT        NOT NULL UNIQUE,
    password_hash   BYTEA       NOT NULL,
    first_name      TEXT        NOT NULL,
    last_name       TEXT        NOT NULL,
    role            TEXT        NOT NULL CHECK (role IN ('student', 'teacher', 'admin')),
    department      TEXT        NOT NULL DEFAULT '',
    student_id      TEXT        UNIQUE,
    teacher_id      TEXT        UNIQUE,
    class_name      TEXT        NOT NULL DEFAULT '',
    subjects        TEXT[]      NOT NULL DEFAULT '{}',
    status          TEXT        NOT NULL DEFAULT 'active',
    enrollment_year INT         NOT NULL DEFAULT 0,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);

-- serialized per-role identifier sequences; bumped with an upsert inside the
-- identity insert transaction
CREATE TABLE IF NOT EXISTS role_sequences (
    role TEXT PRIMARY KEY,
    seq  INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS assessments (
    id              SERIAL PRIMARY KEY,
    student_id      INT         NOT NULL REFERENCES identities (id),
    teacher_id      INT         NOT NULL REFERENCES identities (id),
    subject         TEXT        NOT NULL,
    class_name      TEXT        NOT NULL,
    term            TEXT        NOT NULL,
    academic_year   TEXT        NOT NULL,
    assessment_type TEXT        NOT NULL,
    assessment_name TEXT        NOT NULL,
    assessment_date DATE        NOT NULL,
    max_marks       DOUBLE PRECISION NOT NULL CHECK (max_marks > 0),
    marks_obtained  DOUBLE PRECISION NOT NULL,
    percentage      DOUBLE PRECISION NOT NULL,
    grade           TEXT        NOT NULL,
    weightage       DOUBLE PRECISION NOT NULL DEFAULT 1.0,
    remarks         TEXT        NOT NULL DEFAULT '',
    feedback        TEXT        NOT NULL DEFAULT '',
    status          TEXT        NOT NULL DEFAULT 'published',
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS assessments_student_idx ON assessments (student_id, assessment_date DESC, id DESC);
CREATE INDEX IF NOT EXISTS assessments_teacher_idx ON assessments (teacher_id, created_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS attendance_events (
    id         SERIAL PRIMARY KEY,
    student_id INT         NOT NULL REFERENCES identities (id),
    teacher_id INT         NOT NULL REFERENCES identities (id),
    subject    TEXT        NOT NULL,
    class_name TEXT        NOT NULL,
    date       DATE        NOT NULL,
    status     TEXT        NOT NULL CHECK (status IN ('present', 'absent', 'late')),
    remarks    TEXT        NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS attendance_student_idx ON attendance_events (student_id);
`
